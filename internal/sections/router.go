// Package sections maps content-section ids to titles and renderers.
//
// Both lookups are total: an unknown id resolves to the About pane and the
// "Finder" title. Section ids come from sidebar clicks over a fixed set, so
// the fallback never hides real data.
package sections

import (
	"fmt"

	"github.com/1broseidon/foliodesk/internal/windows"
)

// Section ids.
const (
	About       = "about"
	AboutMe     = "about-me"
	Gallery     = "gallery"
	Projects    = "projects"
	Project1    = "project-1"
	Project2    = "project-2"
	Project3    = "project-3"
	Project4    = "project-4"
	Terminal    = "terminal"
	Contact     = "contact"
	Experience  = "experience"
	Experience1 = "experience-1"
	Experience2 = "experience-2"
	Experience3 = "experience-3"
	Experience4 = "experience-4"
	Trash       = "trash"
	Resume      = "resume"
)

// Renderer identifies the collaborator that draws a pane.
type Renderer int

const (
	RendererAbout Renderer = iota
	RendererExperience
	RendererGallery
	RendererProjects
	RendererProjectDetails
	RendererSkills
	RendererContact
	RendererTrash
	RendererPDF
	RendererTerminal
)

// String returns the string representation of the renderer
func (r Renderer) String() string {
	switch r {
	case RendererAbout:
		return "about"
	case RendererExperience:
		return "experience"
	case RendererGallery:
		return "gallery"
	case RendererProjects:
		return "projects"
	case RendererProjectDetails:
		return "project-details"
	case RendererSkills:
		return "skills"
	case RendererContact:
		return "contact"
	case RendererTrash:
		return "trash"
	case RendererPDF:
		return "pdf"
	case RendererTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the renderer by name.
func (r Renderer) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a renderer name. Unknown names are an error.
func (r *Renderer) UnmarshalText(b []byte) error {
	for c := RendererAbout; c <= RendererTerminal; c++ {
		if c.String() == string(b) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("unknown renderer %q", b)
}

// All returns every section id in the fixed enumeration.
func All() []string {
	return []string{
		About, AboutMe, Gallery, Projects,
		Project1, Project2, Project3, Project4,
		Terminal, Contact,
		Experience, Experience1, Experience2, Experience3, Experience4,
		Trash, Resume,
	}
}

// Known reports whether id is part of the enumeration.
func Known(id string) bool {
	for _, s := range All() {
		if s == id {
			return true
		}
	}
	return false
}

// TitleFor returns the window title for a section.
func TitleFor(id string) string {
	switch id {
	case About:
		return "Work"
	case AboutMe:
		return "About me"
	case Gallery:
		return "Gallery"
	case Projects:
		return "Projects"
	case Project1:
		return "Project 1"
	case Project2:
		return "Project 2 - Converso"
	case Project3:
		return "Project 3"
	case Project4:
		return "Project 4"
	case Terminal:
		return "Terminal"
	case Contact:
		return "Contact"
	case Experience:
		return "Experience"
	case Experience1:
		return "Senior Developer"
	case Experience2:
		return "Full Stack Engineer"
	case Experience3:
		return "Software Engineer"
	case Experience4:
		return "Junior Developer"
	case Trash:
		return "Trash"
	case Resume:
		return "Resume.pdf"
	default:
		return "Finder"
	}
}

// RendererFor returns the pane renderer for a section.
func RendererFor(id string) Renderer {
	switch id {
	case About, Experience, Experience1, Experience2, Experience3, Experience4:
		return RendererExperience
	case AboutMe:
		return RendererAbout
	case Gallery:
		return RendererGallery
	case Projects:
		return RendererProjects
	case Project1, Project2, Project3, Project4:
		return RendererProjectDetails
	case Terminal:
		return RendererSkills
	case Contact:
		return RendererContact
	case Trash:
		return RendererTrash
	case Resume:
		return RendererPDF
	default:
		return RendererAbout
	}
}

// SidebarItem is one Finder favourite.
type SidebarItem struct {
	Section string `json:"section"`
	Label   string `json:"label"`
	IsTrash bool   `json:"is_trash,omitempty"`
}

// Sidebar returns the Finder favourites in display order. The trash row is
// also a drop target for drag-to-trash.
func Sidebar() []SidebarItem {
	return []SidebarItem{
		{Section: AboutMe, Label: "About me"},
		{Section: About, Label: "Work"},
		{Section: Gallery, Label: "Gallery"},
		{Section: Contact, Label: "Contact"},
		{Section: Trash, Label: "Trash", IsTrash: true},
	}
}

// BypassesSidebar reports whether the app's window skips the sidebar and
// router and always mounts one fixed renderer.
func BypassesSidebar(app string) bool {
	_, ok := FixedRenderer(app)
	return ok
}

// FixedRenderer returns the renderer mounted by a sidebar-less app.
func FixedRenderer(app string) (Renderer, bool) {
	switch app {
	case windows.AppTerminal:
		return RendererTerminal, true
	case windows.AppResume:
		return RendererPDF, true
	default:
		return 0, false
	}
}

// View is what a window shell mounts for a window.
type View struct {
	Title    string   `json:"title"`
	Renderer Renderer `json:"renderer"`
	Sidebar  bool     `json:"sidebar"`
}

// Resolve picks the view for a window, applying the sidebar-less exception
// before consulting the router.
func Resolve(w windows.WindowState) View {
	if r, ok := FixedRenderer(w.AppID); ok {
		return View{Title: TitleFor(w.ActiveSection), Renderer: r}
	}
	return View{
		Title:    TitleFor(w.ActiveSection),
		Renderer: RendererFor(w.ActiveSection),
		Sidebar:  true,
	}
}
