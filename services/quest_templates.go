package services

import "career-quest-system/models"

// QuestTemplate is the static blueprint a catalog quest is issued from.
type QuestTemplate struct {
	Title       string
	Description string
	XPReward    int64
	Difficulty  models.QuestDifficulty
	Level       int
}

type careerTemplates struct {
	Daily  []QuestTemplate
	Weekly []QuestTemplate
}

// questTemplatesByCareer maps a career path slug to its quest blueprints.
// Careers without an entry fall back to genericTemplates.
var questTemplatesByCareer = map[string]careerTemplates{
	"full-stack-developer": {
		Daily: []QuestTemplate{
			{Title: "Code Review Practice", Description: "Review and analyze a piece of code, identify potential improvements and best practices.", XPReward: 25, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "HTML Structure Challenge", Description: "Create a semantic HTML page structure for a blog article with proper headings and sections.", XPReward: 30, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "CSS Styling Exercise", Description: "Style a navigation menu using CSS Flexbox or Grid layout system.", XPReward: 35, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "JavaScript Function Writing", Description: "Write a JavaScript function that manipulates DOM elements and handles user interactions.", XPReward: 40, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "API Integration Task", Description: "Fetch data from a public API and display it on a webpage using modern JavaScript.", XPReward: 50, Difficulty: models.QuestDifficultyIntermediate, Level: 2},
			{Title: "React Component Building", Description: "Build a reusable React component with props and state management.", XPReward: 60, Difficulty: models.QuestDifficultyIntermediate, Level: 3},
			{Title: "Database Query Optimization", Description: "Write and optimize database queries for better performance and efficiency.", XPReward: 70, Difficulty: models.QuestDifficultyAdvanced, Level: 4},
		},
		Weekly: []QuestTemplate{
			{Title: "Complete Web Page Project", Description: "Build a complete responsive web page from scratch including HTML, CSS, and basic JavaScript functionality.", XPReward: 150, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "Interactive Web Application", Description: "Create an interactive web application with user input, data validation, and dynamic content updates.", XPReward: 200, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "REST API Development", Description: "Build a RESTful API with proper endpoints, error handling, and database integration.", XPReward: 250, Difficulty: models.QuestDifficultyIntermediate, Level: 2},
			{Title: "Full Stack Feature Implementation", Description: "Implement a complete feature from frontend to backend including authentication and data persistence.", XPReward: 300, Difficulty: models.QuestDifficultyAdvanced, Level: 3},
		},
	},
	"web-developer": {
		Daily: []QuestTemplate{
			{Title: "Responsive Design Practice", Description: "Create a responsive layout that works across desktop, tablet, and mobile devices.", XPReward: 30, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "Cross-browser Compatibility", Description: "Test and fix styling issues across different web browsers.", XPReward: 35, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "Web Accessibility Improvement", Description: "Implement accessibility features like ARIA labels, keyboard navigation, and screen reader support.", XPReward: 40, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "CSS Animation Creation", Description: "Create smooth CSS animations and transitions to enhance user experience.", XPReward: 45, Difficulty: models.QuestDifficultyIntermediate, Level: 2},
		},
		Weekly: []QuestTemplate{
			{Title: "Portfolio Website Creation", Description: "Build a professional portfolio website showcasing your web development skills and projects.", XPReward: 180, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "E-commerce Product Page", Description: "Create a complete e-commerce product page with image gallery, product details, and shopping cart functionality.", XPReward: 220, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "Progressive Web App", Description: "Convert a web application into a Progressive Web App with offline functionality and app-like features.", XPReward: 280, Difficulty: models.QuestDifficultyAdvanced, Level: 3},
		},
	},
	"data-scientist": {
		Daily: []QuestTemplate{
			{Title: "Data Cleaning Exercise", Description: "Clean and preprocess a messy dataset to prepare it for analysis.", XPReward: 35, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "Statistical Analysis Task", Description: "Perform descriptive statistics and identify patterns in a given dataset.", XPReward: 40, Difficulty: models.QuestDifficultyBeginner, Level: 0},
			{Title: "Data Visualization Creation", Description: "Create informative charts and graphs to visualize data insights using Python or R.", XPReward: 45, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "Machine Learning Model Training", Description: "Train a simple machine learning model on a prepared dataset and evaluate its performance.", XPReward: 60, Difficulty: models.QuestDifficultyIntermediate, Level: 2},
		},
		Weekly: []QuestTemplate{
			{Title: "End-to-End Analysis Project", Description: "Complete a full analysis from raw data to presentation-ready findings for a real dataset.", XPReward: 200, Difficulty: models.QuestDifficultyIntermediate, Level: 1},
			{Title: "Predictive Model Deployment", Description: "Build, evaluate and deploy a predictive model with a simple serving endpoint.", XPReward: 300, Difficulty: models.QuestDifficultyAdvanced, Level: 3},
		},
	},
}

// genericTemplates cover careers that have no curated blueprint yet.
var genericTemplates = careerTemplates{
	Daily: []QuestTemplate{
		{Title: "Welcome Quest", Description: "Complete your first task to get started!", XPReward: 50, Difficulty: models.QuestDifficultyBeginner, Level: 0},
		{Title: "Learning Foundation", Description: "Study the fundamentals of your field and complete a basic exercise.", XPReward: 75, Difficulty: models.QuestDifficultyBeginner, Level: 0},
		{Title: "Skill Practice Session", Description: "Spend 30 focused minutes practicing a core skill of your career path.", XPReward: 40, Difficulty: models.QuestDifficultyBeginner, Level: 0},
	},
	Weekly: []QuestTemplate{
		{Title: "Weekly Project Milestone", Description: "Ship a small but complete project exercising this week's learning.", XPReward: 150, Difficulty: models.QuestDifficultyIntermediate, Level: 0},
	},
}

func templatesForCareer(career string) careerTemplates {
	if t, ok := questTemplatesByCareer[career]; ok {
		return t
	}
	return genericTemplates
}
