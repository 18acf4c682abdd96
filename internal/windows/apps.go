package windows

// Application ids known to the desktop.
const (
	AppFinder   = "finder"
	AppContact  = "contact"
	AppResume   = "resume"
	AppSafari   = "safari"
	AppPhotos   = "photos"
	AppTerminal = "terminal"
	AppTrash    = "trash"
	AppTextFile = "txtfile"
	AppImgFile  = "imgfile"
)

// KnownApps returns the built-in application ids in registration order.
func KnownApps() []string {
	return []string{
		AppFinder,
		AppContact,
		AppResume,
		AppSafari,
		AppPhotos,
		AppTerminal,
		AppTrash,
		AppTextFile,
		AppImgFile,
	}
}

// DefaultSection returns the pane an app shows when opened fresh.
func DefaultSection(app string) string {
	switch app {
	case AppFinder:
		return "about-me"
	case AppSafari:
		return "projects"
	case AppTerminal:
		return "terminal"
	case AppContact:
		return "contact"
	case AppPhotos:
		return "gallery"
	case AppTrash:
		return "trash"
	case AppResume:
		return "resume"
	default:
		return "about-me"
	}
}
