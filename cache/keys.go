package cache

import (
	"fmt"

	"github.com/michael123610/codesnippet-hub/models"
)

// Cache keys live in one place so they cannot drift between writers and
// invalidators.

const (
	keyListIndex  = "snippets:list:keys"
	keyAllTags    = "tags:all"
	tmplListKey   = "snippets:list:%d:%d:%s:%s:%s"
	tmplSnippet   = "snippet:%d"
	tmplPopular   = "tags:popular:%d"
)

// ListKey derives a deterministic key from the full filter+pagination
// tuple; two requests with the same tuple share one entry.
func ListKey(params models.SnippetListParams) string {
	return fmt.Sprintf(tmplListKey, params.Page, params.Limit, params.Search, params.Language, params.Tag)
}

func SnippetKey(id uint) string {
	return fmt.Sprintf(tmplSnippet, id)
}

func PopularTagsKey(limit int) string {
	return fmt.Sprintf(tmplPopular, limit)
}
