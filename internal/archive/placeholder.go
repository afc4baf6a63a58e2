package archive

import (
	"fmt"
	"time"

	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

const placeholderDescription = "*** this is a placeholder added by tumblr-archiver to represent inaccessible blogs; " +
	"it's not the real blog info. " +
	"blogs may be inaccessible because they have deactivated " +
	"or because their owner has set them to only be viewable by logged-in tumblr users. ***"

// placeholderTheme is written verbatim for placeholder blogs so downstream
// renderers degrade predictably.
var placeholderTheme = tumblr.Theme{
	HeaderFullWidth:    3000,
	HeaderFullHeight:   1055,
	AvatarShape:        "square",
	BackgroundColor:    "#FFFFFF",
	BodyFont:           "Helvetica Neue",
	HeaderBounds:       "",
	HeaderImage:        "https://64.media.tumblr.com/9791e3ac6b55616ef7caa5d5fffa1886/41686785bc801181-70/s3000x1055/1ace5908b012e6909a2f2869ede61c92a6764d78.png",
	HeaderImageFocused: "https://64.media.tumblr.com/9791e3ac6b55616ef7caa5d5fffa1886/41686785bc801181-70/s2048x3072/39abf74863fe12fb9c38acea25d4797053751402.png",
	HeaderImagePoster:  "",
	HeaderImageScaled:  "https://64.media.tumblr.com/9791e3ac6b55616ef7caa5d5fffa1886/41686785bc801181-70/s2048x3072/39abf74863fe12fb9c38acea25d4797053751402.png",
	HeaderStretch:      true,
	LinkColor:          "#00B8FF",
	ShowAvatar:         true,
	ShowDescription:    true,
	ShowHeaderImage:    true,
	ShowTitle:          true,
	TitleColor:         "#000000",
	TitleFont:          "Sans Serif",
	TitleFontWeight:    "bold",
}

// newPlaceholderBlog synthesizes a blog record standing in for one that
// could not be fetched. The sentinel field values match what earlier
// archiver tooling wrote, so existing stores stay interchangeable; the
// Placeholder flag carries the distinction structurally.
func newPlaceholderBlog(name string, now time.Time) tumblr.Blog {
	return tumblr.Blog{
		Name:        name,
		Title:       fmt.Sprintf("*** %s was inaccessible to tumblr-archiver on %s ***", name, now.UTC().Format(time.RFC3339)),
		Description: placeholderDescription,
		URL:         fmt.Sprintf("https://%s.tumblr.com/", name),
		UUID:        "TUMBLRARCHIVER_PLACEHOLDER_UUID_" + name,
		Updated:     -1,
		PostCount:   -1,
		Avatar: []tumblr.Avatar{{
			URL:    "TUMBLRARCHIVER_PLACEHOLDER_AVATAR_" + name,
			Width:  -1,
			Height: -1,
		}},
		Theme:       placeholderTheme,
		Placeholder: true,
	}
}
