package tumblr

// Avatar is one candidate avatar image for a blog.
type Avatar struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// Theme is a blog's visual configuration as reported by the API.
type Theme struct {
	HeaderFullWidth    int    `json:"header_full_width"`
	HeaderFullHeight   int    `json:"header_full_height"`
	AvatarShape        string `json:"avatar_shape"`
	BackgroundColor    string `json:"background_color"`
	BodyFont           string `json:"body_font"`
	HeaderBounds       string `json:"header_bounds"`
	HeaderImage        string `json:"header_image"`
	HeaderImageFocused string `json:"header_image_focused"`
	HeaderImagePoster  string `json:"header_image_poster"`
	HeaderImageScaled  string `json:"header_image_scaled"`
	HeaderStretch      bool   `json:"header_stretch"`
	LinkColor          string `json:"link_color"`
	ShowAvatar         bool   `json:"show_avatar"`
	ShowDescription    bool   `json:"show_description"`
	ShowHeaderImage    bool   `json:"show_header_image"`
	ShowTitle          bool   `json:"show_title"`
	TitleColor         string `json:"title_color"`
	TitleFont          string `json:"title_font"`
	TitleFontWeight    string `json:"title_font_weight"`
}

// Blog is a blog's metadata as reported alongside a page of posts.
type Blog struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	UUID        string   `json:"uuid"`
	Updated     int64    `json:"updated"`
	PostCount   int64    `json:"posts"`
	Avatar      []Avatar `json:"avatar"`
	Theme       Theme    `json:"theme"`

	// Placeholder marks a synthesized stand-in for a blog that could not
	// be fetched. Never set on records decoded from the API.
	Placeholder bool `json:"-"`
}

// PrimaryAvatar returns the widest avatar candidate. Ties go to the first
// widest in original order; the zero Avatar is returned when there are no
// candidates.
func (b Blog) PrimaryAvatar() Avatar {
	var widest Avatar
	for i, a := range b.Avatar {
		if i == 0 || a.Width > widest.Width {
			widest = a
		}
	}
	return widest
}

// Reblog is a post's single-level reblog annotation.
type Reblog struct {
	Comment  string `json:"comment"`
	TreeHTML string `json:"tree_html"`
}

// TrailItem is one hop in a post's reblog chain.
type TrailItem struct {
	Blog struct {
		Name string `json:"name"`
	} `json:"blog"`
	Post struct {
		ID string `json:"id"`
	} `json:"post"`
	ContentRaw string `json:"content_raw"`
	Content    string `json:"content"`
	IsRootItem bool   `json:"is_root_item"`
}

// Post is a single content item belonging to a blog.
type Post struct {
	Type               string      `json:"type"`
	IsBlocksPostFormat bool        `json:"is_blocks_post_format"`
	BlogName           string      `json:"blog_name"`
	ID                 string      `json:"id_string"`
	PostURL            string      `json:"post_url"`
	ShortURL           string      `json:"short_url"`
	Slug               string      `json:"slug"`
	Timestamp          int64       `json:"timestamp"`
	State              string      `json:"state"`
	Format             string      `json:"format"`
	ReblogKey          string      `json:"reblog_key"`
	Tags               []string    `json:"tags"`
	Summary            string      `json:"summary"`
	NoteCount          int64       `json:"note_count"`
	Title              string      `json:"title"`
	Body               string      `json:"body"`
	Reblog             Reblog      `json:"reblog"`
	Trail              []TrailItem `json:"trail"`
}

// Page is one page of a blog's post history.
type Page struct {
	Blog       Blog   `json:"blog"`
	Posts      []Post `json:"posts"`
	TotalPosts int64  `json:"total_posts"`
}
