package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/models"
)

// In-memory fakes for the repository and cache interfaces. They record
// calls so tests can assert on interaction, and support error injection
// for the failure paths.

type fakeSnippetRepo struct {
	mu sync.Mutex

	items  []models.SnippetItem
	total  int64
	detail *models.SnippetDetail
	byID   map[uint]*models.Snippet

	listCalls      int
	incrementCalls int
	incrementErr   error
	createErr      error

	created     []*models.Snippet
	createdTags [][]string
	deleted     []uint
}

func newFakeSnippetRepo() *fakeSnippetRepo {
	return &fakeSnippetRepo{byID: map[uint]*models.Snippet{}}
}

func (f *fakeSnippetRepo) List(params models.SnippetListParams) ([]models.SnippetItem, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++

	offset := (params.Page - 1) * params.Limit
	if offset >= len(f.items) {
		return []models.SnippetItem{}, f.total, nil
	}
	end := offset + params.Limit
	if end > len(f.items) {
		end = len(f.items)
	}
	return f.items[offset:end], f.total, nil
}

func (f *fakeSnippetRepo) GetDetail(id uint) (*models.SnippetDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detail == nil || f.detail.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.detail
	return &copied, nil
}

func (f *fakeSnippetRepo) GetByID(id uint) (*models.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snippet, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return snippet, nil
}

func (f *fakeSnippetRepo) CreateWithTags(snippet *models.Snippet, tagNames []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	snippet.ID = uint(len(f.created) + 1)
	f.created = append(f.created, snippet)
	f.createdTags = append(f.createdTags, tagNames)
	return nil
}

func (f *fakeSnippetRepo) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSnippetRepo) IncrementViews(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incrementCalls++
	return f.incrementErr
}

func (f *fakeSnippetRepo) incrementCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.incrementCalls
}

func (f *fakeSnippetRepo) ListByUser(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	return f.items, f.total, nil
}

func (f *fakeSnippetRepo) ListOwn(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	return f.items, f.total, nil
}

func (f *fakeSnippetRepo) ListFavorites(userID uint, page, limit int) ([]models.SnippetItem, int64, error) {
	return f.items, f.total, nil
}

type engagementKey struct {
	userID    uint
	snippetID uint
}

type fakeEngagementRepo struct {
	mu        sync.Mutex
	likes     map[engagementKey]bool
	favorites map[engagementKey]bool
	err       error
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		likes:     map[engagementKey]bool{},
		favorites: map[engagementKey]bool{},
	}
}

func (f *fakeEngagementRepo) HasLike(userID, snippetID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[engagementKey{userID, snippetID}], f.err
}

func (f *fakeEngagementRepo) AddLike(userID, snippetID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[engagementKey{userID, snippetID}] = true
	return f.err
}

func (f *fakeEngagementRepo) RemoveLike(userID, snippetID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, engagementKey{userID, snippetID})
	return f.err
}

func (f *fakeEngagementRepo) HasFavorite(userID, snippetID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favorites[engagementKey{userID, snippetID}], f.err
}

func (f *fakeEngagementRepo) AddFavorite(userID, snippetID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorites[engagementKey{userID, snippetID}] = true
	return f.err
}

func (f *fakeEngagementRepo) RemoveFavorite(userID, snippetID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites, engagementKey{userID, snippetID})
	return f.err
}

type fakeCache struct {
	mu sync.Mutex

	lists    map[string]*models.SnippetList
	snippets map[uint]*models.SnippetDetail
	tags     []models.Tag
	popular  map[int][]models.Tag

	listInvalidations int
	snippetDeletes    []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		lists:    map[string]*models.SnippetList{},
		snippets: map[uint]*models.SnippetDetail{},
		popular:  map[int][]models.Tag{},
	}
}

func (f *fakeCache) GetList(key string) (*models.SnippetList, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.lists[key]
	return list, ok
}

func (f *fakeCache) SetList(key string, list *models.SnippetList) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[key] = list
}

func (f *fakeCache) InvalidateLists() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listInvalidations++
	f.lists = map[string]*models.SnippetList{}
}

func (f *fakeCache) GetSnippet(id uint) (*models.SnippetDetail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	detail, ok := f.snippets[id]
	if !ok {
		return nil, false
	}
	copied := *detail
	return &copied, true
}

func (f *fakeCache) SetSnippet(id uint, detail *models.SnippetDetail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *detail
	f.snippets[id] = &copied
}

func (f *fakeCache) DeleteSnippet(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snippets, id)
	f.snippetDeletes = append(f.snippetDeletes, id)
}

func (f *fakeCache) GetTags() ([]models.Tag, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags, f.tags != nil
}

func (f *fakeCache) SetTags(tags []models.Tag) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = tags
}

func (f *fakeCache) GetPopularTags(limit int) ([]models.Tag, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tags, ok := f.popular[limit]
	return tags, ok
}

func (f *fakeCache) SetPopularTags(limit int, tags []models.Tag) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.popular[limit] = tags
}

func (f *fakeCache) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snippetDeletes)
}

type fakeUserRepo struct {
	mu            sync.Mutex
	byEmail       map[string]*models.User
	byID          map[uint]*models.User
	publicCount   int64
	likesReceived int64
	err           error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uint]*models.User{},
	}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	user.ID = uint(len(f.byID) + 1)
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(email, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.byEmail[email]; ok {
		return true, nil
	}
	for _, u := range f.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CountPublicSnippets(userID uint) (int64, error) {
	return f.publicCount, f.err
}

func (f *fakeUserRepo) CountLikesReceived(userID uint) (int64, error) {
	return f.likesReceived, f.err
}

type fakeTagRepo struct {
	tags []models.Tag
	err  error

	getAllCalls     int
	getPopularCalls int
}

func (f *fakeTagRepo) GetAll() ([]models.Tag, error) {
	f.getAllCalls++
	return f.tags, f.err
}

func (f *fakeTagRepo) GetPopular(limit int) ([]models.Tag, error) {
	f.getPopularCalls++
	if limit < len(f.tags) {
		return f.tags[:limit], f.err
	}
	return f.tags, f.err
}

func (f *fakeTagRepo) GetByName(name string) (*models.Tag, error) {
	for i := range f.tags {
		if f.tags[i].Name == name {
			return &f.tags[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
