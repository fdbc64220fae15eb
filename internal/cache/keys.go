package cache

import (
	"strconv"
	"strings"
)

func ProjectsListKey(search, category string, page, limit int) string {
	return "projects:list:v1:page=" + strconv.Itoa(page) +
		":limit=" + strconv.Itoa(limit) +
		":search=" + strings.ToLower(strings.TrimSpace(search)) +
		":category=" + strings.TrimSpace(category)
}

func ResourceKey(resource string, id int64) string {
	return resource + ":id:" + strconv.FormatInt(id, 10)
}

func ListKey(resource string) string {
	return resource + ":list:v1"
}
