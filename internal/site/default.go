package site

// Default returns the tutorial site's configuration. Every call builds a fresh value.
func Default() *Site {
	return &Site{
		Base:        "/tutorials/",
		Title:       "Dev Tutorials",
		Description: "Step-by-step guides for PostgreSQL, SQL Server, JavaScript and web development",
		Lang:        "en-US",
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]any{"rel": "icon", "href": "/tutorials/favicon.ico"}},
			{Tag: "meta", Attrs: map[string]any{"name": "theme-color", "content": "#3c8772"}},
			{Tag: "meta", Attrs: map[string]any{"property": "og:type", "content": "website"}},
		},
		Locales: Locales{
			{Key: RootLocale, Entry: LocaleEntry{
				Label:       "English",
				Lang:        "en-US",
				Title:       "Dev Tutorials",
				Description: "Step-by-step guides for PostgreSQL, SQL Server, JavaScript and web development",
			}},
			{Key: "km", Entry: LocaleEntry{
				Label:       "ភាសាខ្មែរ",
				Lang:        "km-KH",
				Title:       "មេរៀនសរសេរកម្មវិធី",
				Description: "មេរៀនជាជំហានៗសម្រាប់ PostgreSQL, SQL Server, JavaScript និងការអភិវឌ្ឍគេហទំព័រ",
				Link:        "/km/",
				ThemeConfig: khmerTheme(),
			}},
		},
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guides", Items: []NavItem{
					{Text: "PostgreSQL", Link: "/guide/postgresql/", ActiveMatch: "/guide/postgresql/"},
					{Text: "SQL Server", Link: "/guide/sqlserver/", ActiveMatch: "/guide/sqlserver/"},
					{Text: "JavaScript", Link: "/guide/javascript/", ActiveMatch: "/guide/javascript/"},
					{Text: "Web Development", Link: "/guide/webdev/", ActiveMatch: "/guide/webdev/"},
				}},
				{Text: "About", Link: "/about"},
			},
			Sidebar: Sidebar{
				{Prefix: "/guide/postgresql/", Sections: []SidebarSection{postgresSection("PostgreSQL", "Overview", "/guide/postgresql/", postgresChaptersEN)}},
				{Prefix: "/guide/sqlserver/", Sections: []SidebarSection{
					{Text: "Getting Started", Items: []SidebarItem{
						{Text: "Overview", Link: "/guide/sqlserver/"},
						{Text: "Installing SQL Server", Link: "/guide/sqlserver/installation"},
						{Text: "SQL Server Management Studio", Link: "/guide/sqlserver/ssms"},
					}},
					{Text: "T-SQL", Items: []SidebarItem{
						{Text: "SELECT Statements", Link: "/guide/sqlserver/select"},
						{Text: "Stored Procedures", Link: "/guide/sqlserver/stored-procedures"},
						{Text: "Views and Functions", Link: "/guide/sqlserver/views-functions"},
					}},
				}},
				{Prefix: "/guide/javascript/", Sections: []SidebarSection{
					{Text: "JavaScript", Items: []SidebarItem{
						{Text: "Overview", Link: "/guide/javascript/"},
						{Text: "Variables and Types", Link: "/guide/javascript/variables"},
						{Text: "Functions", Link: "/guide/javascript/functions"},
						{Text: "Arrays and Objects", Link: "/guide/javascript/arrays-objects"},
						{Text: "The DOM", Link: "/guide/javascript/dom"},
						{Text: "Async and Promises", Link: "/guide/javascript/async"},
					}},
				}},
				{Prefix: "/guide/webdev/", Sections: []SidebarSection{
					{Text: "Web Development", Items: []SidebarItem{
						{Text: "Overview", Link: "/guide/webdev/"},
						{Text: "HTML Basics", Link: "/guide/webdev/html"},
						{Text: "CSS Layout", Link: "/guide/webdev/css"},
						{Text: "Responsive Design", Link: "/guide/webdev/responsive"},
						{Text: "Deploying a Site", Link: "/guide/webdev/deploy"},
					}},
				}},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/devtutorials-km/tutorials"},
			},
			EditLink: &EditLink{
				Pattern: "https://github.com/devtutorials-km/tutorials/edit/main/docs/:path",
				Text:    "Edit this page on GitHub",
			},
			LastUpdated:  &LastUpdated{Text: "Last updated"},
			DocFooter:    &DocFooter{Prev: "Previous page", Next: "Next page"},
			OutlineTitle: "On this page",
		},
		Markdown: MarkdownOptions{LineNumbers: true, Theme: "github-dark"},
		Build:    BuildOptions{Minify: "esbuild", Target: "es2020"},
	}
}

type chapter struct{ slug, text string }

var postgresChaptersEN = []chapter{
	{"installation", "Installation"},
	{"psql", "Connecting with psql"},
	{"databases", "Creating Databases"},
	{"tables", "Tables and Data Types"},
	{"select", "Querying Data"},
	{"filtering", "Filtering and Sorting"},
	{"joins", "Joins"},
	{"indexes", "Indexes"},
	{"transactions", "Transactions"},
	{"backup", "Backup and Restore"},
}

var postgresChaptersKM = []chapter{
	{"installation", "ការដំឡើង"},
	{"psql", "ការភ្ជាប់ជាមួយ psql"},
	{"databases", "ការបង្កើតមូលដ្ឋានទិន្នន័យ"},
	{"tables", "តារាង និងប្រភេទទិន្នន័យ"},
	{"select", "ការទាញយកទិន្នន័យ"},
	{"filtering", "ការច្រោះ និងតម្រៀប"},
	{"joins", "ការភ្ជាប់តារាង (Joins)"},
	{"indexes", "សន្ទស្សន៍ (Indexes)"},
	{"transactions", "ប្រតិបត្តិការ (Transactions)"},
	{"backup", "ការបម្រុងទុក និងស្ដារ"},
}

// postgresSection builds the Overview entry followed by one entry per chapter.
func postgresSection(title, overview, prefix string, chapters []chapter) SidebarSection {
	items := make([]SidebarItem, 0, len(chapters)+1)
	items = append(items, SidebarItem{Text: overview, Link: prefix})
	for _, c := range chapters {
		items = append(items, SidebarItem{Text: c.text, Link: prefix + c.slug})
	}
	return SidebarSection{Text: title, Items: items}
}

func khmerTheme() *ThemeConfig {
	return &ThemeConfig{
		Nav: []NavItem{
			{Text: "ទំព័រដើម", Link: "/km/"},
			{Text: "មេរៀន", Items: []NavItem{
				{Text: "PostgreSQL", Link: "/km/guide/postgresql/", ActiveMatch: "/km/guide/postgresql/"},
				{Text: "SQL Server", Link: "/km/guide/sqlserver/", ActiveMatch: "/km/guide/sqlserver/"},
			}},
			{Text: "អំពី", Link: "/km/about"},
		},
		Sidebar: Sidebar{
			{Prefix: "/km/guide/postgresql/", Sections: []SidebarSection{postgresSection("PostgreSQL", "ទិដ្ឋភាពទូទៅ", "/km/guide/postgresql/", postgresChaptersKM)}},
			{Prefix: "/km/guide/sqlserver/", Sections: []SidebarSection{
				{Text: "SQL Server", Items: []SidebarItem{
					{Text: "ទិដ្ឋភាពទូទៅ", Link: "/km/guide/sqlserver/"},
					{Text: "ការដំឡើង SQL Server", Link: "/km/guide/sqlserver/installation"},
					{Text: "ឃ្លា SELECT", Link: "/km/guide/sqlserver/select"},
				}},
			}},
		},
		EditLink: &EditLink{
			Pattern: "https://github.com/devtutorials-km/tutorials/edit/main/docs/:path",
			Text:    "កែសម្រួលទំព័រនេះនៅលើ GitHub",
		},
		LastUpdated:  &LastUpdated{Text: "ធ្វើបច្ចុប្បន្នភាពចុងក្រោយ"},
		DocFooter:    &DocFooter{Prev: "ទំព័រមុន", Next: "ទំព័របន្ទាប់"},
		OutlineTitle: "នៅលើទំព័រនេះ",
	}
}
