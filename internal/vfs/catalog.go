package vfs

import "fmt"

// DefaultTrashMeta is the metadata of the derived trash root.
func DefaultTrashMeta() Meta {
	return Meta{ID: "4", Name: "Trash", Icon: "/icons/trash.svg"}
}

// DefaultRoots returns a fresh copy of the built-in catalog.
func DefaultRoots() map[Location]*Folder {
	return map[Location]*Folder{
		LocationWork:   workRoot(),
		LocationAbout:  aboutRoot(),
		LocationResume: resumeRoot(),
	}
}

func projectFolder(id, name, github, position, windowPosition string, lines []string, demo string) *Folder {
	return &Folder{
		Meta:           Meta{ID: id, Name: name, Icon: "/images/folder.png"},
		GitHub:         github,
		Position:       position,
		WindowPosition: windowPosition,
		Children: []Node{
			&File{
				Meta:     Meta{ID: "1", Name: "Project Details.txt", Icon: "/images/txt.png"},
				Position: "top-5 left-10",
				Payload:  Text{Lines: lines},
			},
			&File{
				Meta:     Meta{ID: "2", Name: "Live Demo", Icon: "/images/safari.png"},
				Position: "top-10 right-20",
				Payload:  Link{Href: demo},
			},
		},
	}
}

func workRoot() *Folder {
	return &Folder{
		Meta: Meta{ID: "1", Name: "Work", Icon: "/icons/work.svg"},
		Children: []Node{
			projectFolder("5", "ThreatSentry",
				"https://github.com/GOATNINJA10/ThreatSentry",
				"top-10 left-5", "top-[5vh] left-5",
				[]string{
					"A cybersecurity threat detection and monitoring platform for real-time security analysis.",
					"Built with React, Next.js, TypeScript, Security APIs.",
					"Features advanced threat detection, real-time monitoring, and comprehensive security insights.",
				},
				"https://threat-sentry.vercel.app/"),
			projectFolder("6", "ActiveStride",
				"https://github.com/GOATNINJA10/ActiveStride",
				"top-52 right-80", "top-[20vh] left-7",
				[]string{
					"ActiveStride is a sleek and dynamic eCommerce frontend designed to deliver a seamless shopping experience.",
					"Built with React, Next.js, TypeScript, Tailwind CSS.",
					"Created for active lifestyle enthusiasts with modern UI/UX and responsive design.",
				},
				"https://active-stride.vercel.app"),
			projectFolder("7", "ThreeDesign",
				"https://github.com/KshitijBramhecha/threejs-ai-design",
				"top-80 left-40", "top-[35vh] left-10",
				[]string{
					"A 3D T-shirt customization web app built with Three.js for real-time visualization.",
					"Built with Three.js, React, WebGL, AI Design.",
					"Allows users to design and visualize personalized apparel in an immersive 3D environment.",
				},
				"https://threejs-ai-design.netlify.app/"),
		},
	}
}

func aboutRoot() *Folder {
	return &Folder{
		Meta: Meta{ID: "2", Name: "About me", Icon: "/icons/info.svg"},
		Children: []Node{
			&File{
				Meta:     Meta{ID: "1", Name: "profile.png", Icon: "/images/image.png"},
				Position: "top-10 left-5",
				Payload:  Image{URL: "/images/profile.jpg"},
			},
			&File{
				Meta:     Meta{ID: "4", Name: "about-me.txt", Icon: "/images/txt.png"},
				Position: "top-60 left-5",
				Payload: Text{
					Subtitle: "Full Stack Web Developer",
					Image:    "/images/profile.jpg",
					Lines: []string{
						"Hi! I'm Kshitij Bramhecha, a Full Stack Web Developer based in India with a passion for code.",
						"I specialize in building modern web applications with 2+ years of experience and 12+ completed projects.",
						"My tech stack includes React, Next.js, Node.js, Python, Three.js, and AI/ML technologies.",
						"I focus on quality, reliable communication, and on-time delivery while turning innovative ideas into real projects that deliver results.",
					},
				},
			},
		},
	}
}

func resumeRoot() *Folder {
	return &Folder{
		Meta: Meta{ID: "3", Name: "Resume", Icon: "/icons/file.svg"},
		Children: []Node{
			&File{
				Meta:    Meta{ID: "1", Name: "Resume.pdf", Icon: "/images/pdf.png"},
				Payload: Document{Href: "/files/resume.pdf"},
			},
		},
	}
}

// RootsFromDescriptors builds roots from catalog descriptors keyed by
// location. Unknown keys are rejected.
func RootsFromDescriptors(in map[string]Descriptor) (map[Location]*Folder, error) {
	out := make(map[Location]*Folder, len(in))
	for key, d := range in {
		loc, err := ParseLocation(key)
		if err != nil {
			return nil, err
		}
		if d.Kind == "" {
			d.Kind = "folder"
		}
		n, err := Build(d)
		if err != nil {
			return nil, err
		}
		folder, ok := n.(*Folder)
		if !ok {
			return nil, fmt.Errorf("catalog root %s must be a folder", loc)
		}
		out[loc] = folder
	}
	return out, nil
}
