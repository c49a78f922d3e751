package announcement

import apperrors "github.com/xiebiao/bookbazar/pkg/errors"

var (
	// ErrAnnouncementNotFound 公告不存在
	ErrAnnouncementNotFound = apperrors.New(apperrors.ErrCodeAnnouncementNotFound, "公告不存在")

	// ErrTitleRequired 公告标题不能为空
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "公告标题不能为空")

	// ErrInvalidWindow 结束时间早于开始时间
	ErrInvalidWindow = apperrors.New(apperrors.ErrCodeInvalidParams, "公告结束时间不能早于开始时间")
)
