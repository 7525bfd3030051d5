package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
)

type SnippetRepository interface {
	// List returns one page of public snippets matching the filters
	// plus the total count over the same predicate.
	List(params models.SnippetListParams) ([]models.SnippetItem, int64, error)
	GetDetail(id uint) (*models.SnippetDetail, error)
	GetByID(id uint) (*models.Snippet, error)
	// CreateWithTags inserts the snippet and its tag associations in a
	// single transaction; nothing persists on failure.
	CreateWithTags(snippet *models.Snippet, tagNames []string) error
	Delete(id uint) error
	IncrementViews(id uint) error
	ListByUser(userID uint, page, limit int) ([]models.SnippetItem, int64, error)
	ListOwn(userID uint, page, limit int) ([]models.SnippetItem, int64, error)
	ListFavorites(userID uint, page, limit int) ([]models.SnippetItem, int64, error)
}

type snippetRepository struct {
	db *gorm.DB
}

func NewSnippetRepository(db *gorm.DB) SnippetRepository {
	return &snippetRepository{db: db}
}

// snippetRow is the scan target for the raw listing/detail queries.
type snippetRow struct {
	ID             uint
	UserID         uint
	Title          string
	Description    string
	Code           string
	Language       string
	IsPublic       bool
	Views          int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string
	Avatar         string
	Bio            string
	LikesCount     int64
	FavoritesCount int64
	FavoritedAt    *time.Time
	Tags           string
}

const snippetColumns = `s.id, s.user_id, s.title, s.description, s.code, s.language, s.is_public, s.views, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.snippet_id = s.id) AS likes_count,
	COALESCE((SELECT string_agg(t.name, ',') FROM snippet_tags st JOIN tags t ON st.tag_id = t.id WHERE st.snippet_id = s.id), '') AS tags`

func (row *snippetRow) toItem() models.SnippetItem {
	item := models.SnippetItem{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Code:        row.Code,
		Language:    row.Language,
		IsPublic:    row.IsPublic,
		Views:       row.Views,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		Username:    row.Username,
		Avatar:      row.Avatar,
		LikesCount:  row.LikesCount,
		Tags:        []string{},
		FavoritedAt: row.FavoritedAt,
	}
	if row.Tags != "" {
		item.Tags = strings.Split(row.Tags, ",")
	}
	return item
}

func (r *snippetRepository) List(params models.SnippetListParams) ([]models.SnippetItem, int64, error) {
	where := "WHERE s.is_public = TRUE"
	var args []interface{}

	if params.Search != "" {
		where += " AND (s.title ILIKE ? OR s.description ILIKE ?)"
		term := "%" + params.Search + "%"
		args = append(args, term, term)
	}
	if params.Language != "" {
		where += " AND s.language = ?"
		args = append(args, params.Language)
	}
	if params.Tag != "" {
		where += " AND s.id IN (SELECT st.snippet_id FROM snippet_tags st JOIN tags t ON st.tag_id = t.id WHERE t.name = ?)"
		args = append(args, params.Tag)
	}

	// The count query mirrors the full filter predicate and ignores
	// pagination, so total is stable across pages.
	var total int64
	if err := r.db.Raw("SELECT COUNT(*) FROM snippets s "+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := "SELECT " + snippetColumns + ", u.username, u.avatar " +
		"FROM snippets s JOIN users u ON s.user_id = u.id " + where +
		" ORDER BY s.created_at DESC LIMIT ? OFFSET ?"
	offset := (params.Page - 1) * params.Limit

	var rows []snippetRow
	if err := r.db.Raw(query, append(args, params.Limit, offset)...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.SnippetItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toItem())
	}
	return items, total, nil
}

func (r *snippetRepository) GetDetail(id uint) (*models.SnippetDetail, error) {
	query := "SELECT " + snippetColumns + ", u.username, u.avatar, u.bio " +
		"FROM snippets s JOIN users u ON s.user_id = u.id WHERE s.id = ?"

	var rows []snippetRow
	if err := r.db.Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	detail := &models.SnippetDetail{
		SnippetItem: rows[0].toItem(),
		Bio:         rows[0].Bio,
	}
	return detail, nil
}

func (r *snippetRepository) GetByID(id uint) (*models.Snippet, error) {
	var snippet models.Snippet
	err := r.db.First(&snippet, id).Error
	return &snippet, err
}

func (r *snippetRepository) CreateWithTags(snippet *models.Snippet, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snippet).Error; err != nil {
			return err
		}

		// Tags are processed in input order. The usage counter is
		// bumped once per requested name, so a name repeated in one
		// request counts twice even though only one association row
		// exists.
		for _, name := range tagNames {
			var tag models.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				tag = models.Tag{Name: name}
				if err := tx.Create(&tag).Error; err != nil {
					return err
				}
			}

			var existing int64
			if err := tx.Model(&models.SnippetTag{}).
				Where("snippet_id = ? AND tag_id = ?", snippet.ID, tag.ID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing == 0 {
				assoc := models.SnippetTag{SnippetID: snippet.ID, TagID: tag.ID}
				if err := tx.Create(&assoc).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.Tag{}).Where("id = ?", tag.ID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *snippetRepository) Delete(id uint) error {
	// Associations and engagement rows go with the snippet via the
	// ON DELETE CASCADE constraints.
	return r.db.Delete(&models.Snippet{}, id).Error
}

func (r *snippetRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Snippet{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *snippetRepository) ListByUser(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	var total int64
	if err := r.db.Model(&models.Snippet{}).
		Where("user_id = ? AND is_public = TRUE", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := "SELECT " + snippetColumns + ", u.username, u.avatar " +
		"FROM snippets s JOIN users u ON s.user_id = u.id " +
		"WHERE s.user_id = ? AND s.is_public = TRUE " +
		"ORDER BY s.created_at DESC LIMIT ? OFFSET ?"

	var rows []snippetRow
	if err := r.db.Raw(query, userID, limit, (page-1)*limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.SnippetItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toItem())
	}
	return items, total, nil
}

func (r *snippetRepository) ListOwn(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	var total int64
	if err := r.db.Model(&models.Snippet{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := "SELECT " + snippetColumns + ", u.username, u.avatar, " +
		"(SELECT COUNT(*) FROM favorites f WHERE f.snippet_id = s.id) AS favorites_count " +
		"FROM snippets s JOIN users u ON s.user_id = u.id " +
		"WHERE s.user_id = ? " +
		"ORDER BY s.created_at DESC LIMIT ? OFFSET ?"

	var rows []snippetRow
	if err := r.db.Raw(query, userID, limit, (page-1)*limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.SnippetItem, 0, len(rows))
	for i := range rows {
		item := rows[i].toItem()
		favorites := rows[i].FavoritesCount
		item.FavoritesCount = &favorites
		items = append(items, item)
	}
	return items, total, nil
}

func (r *snippetRepository) ListFavorites(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	var total int64
	if err := r.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := "SELECT " + snippetColumns + ", u.username, u.avatar, f.created_at AS favorited_at " +
		"FROM favorites f " +
		"JOIN snippets s ON f.snippet_id = s.id " +
		"JOIN users u ON s.user_id = u.id " +
		"WHERE f.user_id = ? " +
		"ORDER BY f.created_at DESC LIMIT ? OFFSET ?"

	var rows []snippetRow
	if err := r.db.Raw(query, userID, limit, (page-1)*limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.SnippetItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toItem())
	}
	return items, total, nil
}
