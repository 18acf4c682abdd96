package terminal

// HelpHeader is the first line of the help output.
const HelpHeader = "Available commands:"

// Prompt is printed before each echoed command.
const Prompt = "@kshitij %"

var helpLines = []string{
	HelpHeader,
	"  help           - Show this help message",
	"  about          - About me",
	"  skills         - Show my skills",
	"  experience     - Show work experience",
	"  projects       - List my projects",
	"  contact        - Get contact information",
	"  clear / cls    - Clear terminal",
	"  show techstack - Display tech stack table",
	"  github stats   - Show GitHub statistics",
}

// wrapped commands get a blank line before and after their text.
var wrapped = map[string][]string{
	"about": {
		"Hi! I'm Kshitij Bramhecha",
		"A passionate software engineer specializing in full-stack development.",
		"I build modern web applications with a focus on user experience and performance.",
	},
	"skills": {
		"Frontend: React.js, Next.js, TypeScript, Tailwind CSS, Three.js, Framer Motion",
		"Backend: Node.js, Python, FastAPI, AWS Polly, Web Crawling",
		"Tools: Git, GitHub, VS Code, AI/ML, LLM Integration",
	},
	"experience": {
		"Intern @ NemHem AI (Aug 2025 - Dec 2025)",
		"  - Built a Platform of Fine-Tuned LLMs for specific use-cases with RAG model",
		"  - Developed platform integrating multiple fine-tuned LLMs",
		"  - Implemented RAG model to enhance information retrieval",
		"",
		"SDE Intern @ Ellipsis Infotech (Jan 2025 - March 2025)",
		"  - Enhanced data collection for spectrometer data management",
		"  - Developed software to capture screenshots of spectrometer readings",
		"  - Used fine-tuned PaddleOCR for accurate text recognition",
	},
	"projects": {
		"1. ThreatSentry - Cybersecurity threat detection and monitoring platform",
		"   Tech: React, Next.js, TypeScript, Security APIs",
		"   GitHub: github.com/GOATNINJA10/ThreatSentry",
		"",
		"2. ActiveStride - Sleek eCommerce frontend for active lifestyle enthusiasts",
		"   Tech: React, Next.js, TypeScript, Tailwind CSS",
		"   GitHub: github.com/GOATNINJA10/ActiveStride",
		"",
		"3. ThreeDesign - 3D T-shirt customization web app with real-time visualization",
		"   Tech: Three.js, React, WebGL, AI Design",
		"   GitHub: github.com/KshitijBramhecha/threejs-ai-design",
	},
	"contact": {
		"Email: kshitijlm10b@gmail.com",
		"GitHub: github.com/GOATNINJA10",
		"LinkedIn: linkedin.com/in/kshitij-bramhecha-175503243",
		"Location: India",
	},
}

// verbatim commands carry their own framing.
var verbatim = map[string][]string{
	"show techstack": {
		"",
		"    Category              Technologies",
		"    ─────────────────────────────────────────────────────────────",
		"    ✓ Frontend            React, Next, TypeScript",
		"                          Tailwind, Sass, CSS",
		"    ✓ Styling             Tailwind, Sass, CSS",
		"    ✓ Backend             NodeJS, Express, NestJS",
		"    ✓ Database            MongoDB, PostgreSQL",
		"    ✓ Dev Tools           Git, GitHub, Docker",
		"    ─────────────────────────────────────────────────────────────",
		"    ✓ 5 of 5 stacks loaded successfully (100%)",
		"    ▬ Render time: 6ms",
		"",
	},
	"github stats": {
		"",
		"Loading GitHub statistics...",
		"",
		"📊 GitHub Stats:",
		"   ⭐ Total Stars: 150+",
		"   🔱 Total Forks: 45+",
		"   📦 Public Repos: 32",
		"   👥 Followers: 280+",
		"   📈 Contributions: 1,200+ (this year)",
		"",
	},
}

var welcomeLines = []string{
	"Welcome to Kshitij's Portfolio Terminal",
	`Type "help" to see available commands`,
	"",
}
