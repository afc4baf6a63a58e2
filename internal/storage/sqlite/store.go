// Package sqlite persists archived blogs and posts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// Store implements archive.Store over a single SQLite file.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens (creating if necessary) the database at path and applies the
// schema from schemaPath. A missing or failing schema file is logged and
// tolerated: an existing database is assumed to already carry a compatible
// schema.
func New(path, schemaPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// SQLite serializes writes anyway; a single connection avoids
	// SQLITE_BUSY between concurrent blog tasks.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}

	s := &Store{db: db, logger: logger}
	s.applySchema(schemaPath)
	return s, nil
}

func (s *Store) applySchema(schemaPath string) {
	ddl, err := os.ReadFile(schemaPath)
	if err != nil {
		s.logger.Warn("Could not read schema file; assuming the database schema already exists",
			zap.String("schema", schemaPath),
			zap.Error(err),
		)
		return
	}
	if _, err := s.db.Exec(string(ddl)); err != nil {
		s.logger.Warn("Could not apply schema; assuming the database schema already exists",
			zap.String("schema", schemaPath),
			zap.Error(err),
		)
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasBlog reports whether a blog row with the given name exists.
func (s *Store) HasBlog(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM blogs WHERE name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count blog %s: %w", name, err)
	}
	return count > 0, nil
}

// SaveBlog upserts a blog row keyed by name, replacing every field
// including the chosen avatar and the flattened theme.
func (s *Store) SaveBlog(ctx context.Context, blog tumblr.Blog) error {
	avatar := blog.PrimaryAvatar()
	theme := blog.Theme

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO blogs (
			name, title, description, url, uuid, updated,
			avatar_width, avatar_height, avatar_url, posts,
			theme_header_full_width, theme_header_full_height,
			theme_avatar_shape, theme_background_color, theme_body_font,
			theme_header_bounds, theme_header_image, theme_header_image_focused,
			theme_header_image_poster, theme_header_image_scaled,
			theme_header_stretch, theme_link_color,
			theme_show_avatar, theme_show_description,
			theme_show_header_image, theme_show_title,
			theme_title_color, theme_title_font, theme_title_font_weight
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.Name, blog.Title, blog.Description, blog.URL, blog.UUID, blog.Updated,
		avatar.Width, avatar.Height, avatar.URL, blog.PostCount,
		theme.HeaderFullWidth, theme.HeaderFullHeight,
		theme.AvatarShape, theme.BackgroundColor, theme.BodyFont,
		theme.HeaderBounds, theme.HeaderImage, theme.HeaderImageFocused,
		theme.HeaderImagePoster, theme.HeaderImageScaled,
		theme.HeaderStretch, theme.LinkColor,
		theme.ShowAvatar, theme.ShowDescription,
		theme.ShowHeaderImage, theme.ShowTitle,
		theme.TitleColor, theme.TitleFont, theme.TitleFontWeight,
	)
	if err != nil {
		return fmt.Errorf("upsert blog %s: %w", blog.Name, err)
	}
	return nil
}

// SavePost inserts a post, its tags, and its trail items in one
// transaction. If any insert fails, none of the rows become visible.
func (s *Store) SavePost(ctx context.Context, post tumblr.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (
			type, is_blocks_post_format, blog_name, id, post_url, short_url,
			slug, timestamp, state, format, reblog_key, summary, note_count,
			title, body, reblog_comment, reblog_tree_html
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Type, post.IsBlocksPostFormat, post.BlogName, post.ID, post.PostURL, post.ShortURL,
		post.Slug, post.Timestamp, post.State, post.Format, post.ReblogKey, post.Summary, post.NoteCount,
		post.Title, post.Body, post.Reblog.Comment, post.Reblog.TreeHTML,
	)
	if err != nil {
		return fmt.Errorf("insert post %s: %w", post.ID, err)
	}

	for _, tag := range post.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO tags (post_id, tag) VALUES (?, ?)",
			post.ID, tag,
		); err != nil {
			return fmt.Errorf("insert tag %q for post %s: %w", tag, post.ID, err)
		}
	}

	for _, item := range post.Trail {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trail_items (
				source_post_id, blog_name, post_id, content_raw, content, is_root_item
			) VALUES (?, ?, ?, ?, ?, ?)`,
			post.ID, item.Blog.Name, item.Post.ID, item.ContentRaw, item.Content, item.IsRootItem,
		); err != nil {
			return fmt.Errorf("insert trail item for post %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit post %s: %w", post.ID, err)
	}
	return nil
}
