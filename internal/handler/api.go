package handler

import (
	"github.com/adventcalendar/internal/config"
	"github.com/adventcalendar/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	content       *service.CalendarContent
	contentErr    error
	policy        *service.UnlockPolicy
	storageDriver string
	siteTitle     string
}

// Options 描述构造 API 所需的依赖。
// ContentErr 非空时所有页面都显示错误，不渲染任何门。
type Options struct {
	DB            *gorm.DB
	Content       *service.CalendarContent
	ContentErr    error
	Policy        *service.UnlockPolicy
	StorageDriver string
	SiteTitle     string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	policy := opts.Policy
	if policy == nil {
		policy = service.NewUnlockPolicy()
	}

	driver := opts.StorageDriver
	if driver == "" {
		driver = config.StorageDriverCookie
	}

	title := opts.SiteTitle
	if title == "" {
		title = "Advent Calendar"
	}

	contentErr := opts.ContentErr
	if contentErr == nil && opts.Content == nil {
		contentErr = service.ErrCalendarInvalid
	}

	return &API{
		db:            opts.DB,
		content:       opts.Content,
		contentErr:    contentErr,
		policy:        policy,
		storageDriver: driver,
		siteTitle:     title,
	}
}
