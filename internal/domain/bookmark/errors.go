package bookmark

import apperrors "github.com/xiebiao/bookbazar/pkg/errors"

var (
	// ErrBookmarkNotFound 书签不存在
	ErrBookmarkNotFound = apperrors.New(apperrors.ErrCodeNotFound, "书签不存在")
)
