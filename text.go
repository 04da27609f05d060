package main

// Project is one card in the projects section.
type Project struct {
	Title string
	Desc  string
	Image string
	Tags  []string
	Demo  string
	Code  string
}

var (
	Name = "Lucas Henry"

	AboutMe = `Software engineer focused on building reliable full-stack systems and cloud-native
	infrastructure. I love turning complex problems into clean, performant products.`

	Skills = []string{
		"⚡ TypeScript, React, Next.js",
		"☁️ Docker, CI/CD, Kubernetes",
		"🧠 Python, FastAPI",
		"🗄️ Postgres, Prisma",
	}

	Projects = []Project{
		{
			Title: "Discord Bot",
			Desc: `This Discord bot, built using C#, Replicate, and AWS, can generate AI images, roll dice,
	and take polls. It provides a fun and interactive experience for users.`,
			Image: "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"Python", "Replicate", "AWS"},
			Demo:  "#",
			Code:  "#",
		},
		{
			Title: "Index Llama Agent",
			Desc: `Index Llama Agent is a local large language model agent developed using Python, Llama,
	and Slack API. It can execute code, retrieve data, and solve problems autonomously.`,
			Image: "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"Ollama", "Slack API", "Python"},
			Demo:  "#",
			Code:  "#",
		},
		{
			Title: "Personal Site",
			Desc: `My personal site, built with Go, Gin and HTMX, showcases my projects and work experience
	over a procedurally generated starfield you can switch off with Ctrl+S.`,
			Image: "https://images.unsplash.com/photo-1520607162513-77705c0f0d4a?q=80&w=1200&auto=format&fit=crop",
			Tags:  []string{"Go", "Gin", "HTMX"},
			Demo:  "#",
			Code:  "#",
		},
	}

	GitHubURL   = "https://github.com/your-handle"
	LinkedInURL = "https://linkedin.com/in/your-handle"
)
