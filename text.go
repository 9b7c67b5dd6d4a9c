package main

// DockApp is one icon in the desktop dock.
type DockApp struct {
	ID   string
	Name string
	Icon string
}

type TimelineEntry struct {
	Year  string
	Title string
	Desc  string
}

type Competency struct {
	Title  string
	Skills []string
}

type Project struct {
	ID       int
	Name     string
	Category string
	Kind     string // "folder" or "pdf"
	Tech     []string
	GitHub   string
	Desc     string
}

type Skill struct {
	Name  string
	Level int
	Desc  string
}

type SkillCategory struct {
	ID     string
	Name   string
	Icon   string
	Skills []Skill
}

type ContactItem struct {
	Icon  string
	Label string
	Value string
	Href  string
}

const (
	ProfileName    = "허대범 (Heo Daebeom)"
	ProfileTitle   = "Full Stack Developer"
	ProfileTagline = "나라는 사람을 검색해 보세요."
	ProfileURL     = "https://daebeom.heo/about"
)

const CategoryAll = "All"

var (
	Apps = []DockApp{
		{ID: "terminal", Name: "Home", Icon: "/static/icons/terminal.png"},
		{ID: "safari", Name: "About", Icon: "/static/icons/safari.png"},
		{ID: "finder", Name: "Projects", Icon: "/static/icons/finder.png"},
		{ID: "settings", Name: "Skills", Icon: "/static/icons/settings.png"},
		{ID: "contacts", Name: "Contacts", Icon: "/static/icons/contacts.png"},
	}

	Timeline = []TimelineEntry{
		{Year: "2024", Title: "프리랜서 풀스택 개발자", Desc: "다양한 클라이언트 프로젝트 진행 중"},
		{Year: "2022", Title: "스타트업 개발팀 리드", Desc: "서비스 기획부터 배포까지 전 과정 리드"},
		{Year: "2021", Title: "웹 개발 시작", Desc: "첫 프로젝트로 React 기반 포트폴리오 사이트 제작"},
	}

	Competencies = []Competency{
		{Title: "Frontend Development", Skills: []string{"React", "Next.js", "TypeScript", "Tailwind CSS"}},
		{Title: "Backend Development", Skills: []string{"Node.js", "Express", "NestJS", "REST API"}},
		{Title: "Database & DevOps", Skills: []string{"MongoDB", "PostgreSQL", "Docker", "AWS"}},
		{Title: "Soft Skills", Skills: []string{"팀 리더십", "문제 해결", "커뮤니케이션", "빠른 학습"}},
	}

	ProjectCategories = []string{CategoryAll, "Web", "App", "Game"}

	Projects = []Project{
		{ID: 1, Name: "E-Commerce Platform", Category: "Web", Kind: "folder",
			Tech: []string{"Next.js", "Node.js", "MongoDB"}, GitHub: "https://github.com/daebeom",
			Desc: "Full-stack 온라인 쇼핑몰 플랫폼. 실시간 재고 관리 및 결제 시스템 구현."},
		{ID: 2, Name: "AI Chat Application", Category: "App", Kind: "folder",
			Tech: []string{"React", "OpenAI", "Socket.io"}, GitHub: "https://github.com/daebeom",
			Desc: "AI 기반 실시간 채팅 앱. GPT API를 활용한 스마트 응답 기능."},
		{ID: 3, Name: "Task Management", Category: "Web", Kind: "folder",
			Tech: []string{"TypeScript", "Express", "PostgreSQL"}, GitHub: "https://github.com/daebeom",
			Desc: "협업형 프로젝트 관리 도구. Kanban 보드와 실시간 동기화."},
		{ID: 4, Name: "Weather Dashboard", Category: "App", Kind: "folder",
			Tech: []string{"React", "Weather API", "Chart.js"}, GitHub: "https://github.com/daebeom",
			Desc: "날씨 예보 대시보드. 인터랙티브 지도와 시각화 차트."},
		{ID: 5, Name: "Architecture.pdf", Category: CategoryAll, Kind: "pdf",
			Desc: "전체 시스템 아키텍처 설계 문서"},
	}

	SkillCategories = []SkillCategory{
		{ID: "processor", Name: "Processor", Icon: "⚡", Skills: []Skill{
			{Name: "React", Level: 95, Desc: "Core processing unit for UI"},
			{Name: "Next.js", Level: 92, Desc: "Enhanced React with SSR"},
			{Name: "TypeScript", Level: 90, Desc: "Type-safe development"},
		}},
		{ID: "memory", Name: "Memory", Icon: "🧠", Skills: []Skill{
			{Name: "Node.js", Level: 88, Desc: "Server-side runtime"},
			{Name: "Express", Level: 85, Desc: "Web framework"},
			{Name: "NestJS", Level: 82, Desc: "Enterprise framework"},
		}},
		{ID: "storage", Name: "Storage", Icon: "💾", Skills: []Skill{
			{Name: "MongoDB", Level: 87, Desc: "NoSQL database"},
			{Name: "PostgreSQL", Level: 83, Desc: "Relational database"},
			{Name: "Redis", Level: 80, Desc: "Cache system"},
		}},
		{ID: "graphics", Name: "Graphics", Icon: "🎨", Skills: []Skill{
			{Name: "TailwindCSS", Level: 93, Desc: "Utility-first CSS"},
			{Name: "Framer Motion", Level: 88, Desc: "Animation library"},
			{Name: "Three.js", Level: 75, Desc: "3D graphics"},
		}},
	}

	Contacts = []ContactItem{
		{Icon: "📧", Label: "Email", Value: "heo.daebeom@example.com", Href: "mailto:heo.daebeom@example.com"},
		{Icon: "📱", Label: "Phone", Value: "+82 10-1234-5678", Href: "tel:+821012345678"},
		{Icon: "💼", Label: "LinkedIn", Value: "linkedin.com/in/daebeom", Href: "https://linkedin.com/in/daebeom"},
		{Icon: "🐱", Label: "GitHub", Value: "github.com/daebeom", Href: "https://github.com/daebeom"},
		{Icon: "📍", Label: "Location", Value: "Seoul, South Korea"},
	}
)

// FilterProjects returns the projects shown under a Finder category.
func FilterProjects(category string) []Project {
	if category == "" || category == CategoryAll {
		return Projects
	}
	var out []Project
	for _, p := range Projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FindSkillCategory looks up a settings pane, falling back to the first one.
func FindSkillCategory(id string) SkillCategory {
	for _, c := range SkillCategories {
		if c.ID == id {
			return c
		}
	}
	return SkillCategories[0]
}

func findApp(id string) (DockApp, bool) {
	for _, a := range Apps {
		if a.ID == id {
			return a, true
		}
	}
	return DockApp{}, false
}
