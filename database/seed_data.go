package database

import (
	"github.com/sahilchouksey/career-compass-api/model"
	"gorm.io/datatypes"
)

type seedQuestion struct {
	category string
	text     string
	reverse  bool
}

var riasecQuestions = []seedQuestion{
	{"realistic", "I enjoy repairing machines or equipment.", false},
	{"realistic", "I like working outdoors with tools.", false},
	{"realistic", "I would rather build something than write about it.", false},
	{"investigative", "I enjoy solving complex puzzles.", false},
	{"investigative", "I like to understand how things work scientifically.", false},
	{"investigative", "I enjoy reading about research findings.", false},
	{"artistic", "I like expressing myself through art, music or writing.", false},
	{"artistic", "I prefer tasks that let me be original.", false},
	{"artistic", "I would rather follow clear instructions than improvise.", true},
	{"social", "I enjoy helping people with their problems.", false},
	{"social", "I like teaching or training others.", false},
	{"social", "I feel energized by working with a team.", false},
	{"enterprising", "I like persuading others to see my point of view.", false},
	{"enterprising", "I would enjoy starting my own business.", false},
	{"enterprising", "I like taking the lead on group projects.", false},
	{"conventional", "I like keeping records accurate and organized.", false},
	{"conventional", "I enjoy working with numbers and spreadsheets.", false},
	{"conventional", "I prefer clear procedures to follow.", false},
}

var skillQuestions = []seedQuestion{
	{"programming", "I can write a small program to automate a task.", false},
	{"programming", "I can debug code that someone else wrote.", false},
	{"data_analysis", "I can summarize a dataset and spot trends.", false},
	{"data_analysis", "I can build a chart that answers a question.", false},
	{"mathematics", "I am comfortable with algebra and statistics.", false},
	{"mathematics", "I can reason through a quantitative problem step by step.", false},
	{"communication", "I can explain a complex idea in simple terms.", false},
	{"communication", "I speak confidently in front of a group.", false},
	{"writing", "I can write a clear, well-structured report.", false},
	{"writing", "Editing my own writing is hard for me.", true},
	{"design", "I can sketch or mock up how something should look.", false},
	{"design", "I notice when layouts or visuals feel unbalanced.", false},
	{"leadership", "I can coordinate a team toward a deadline.", false},
	{"leadership", "Others look to me when a decision must be made.", false},
	{"mechanical", "I can assemble or fix physical equipment.", false},
	{"mechanical", "I understand how engines or circuits work.", false},
	{"empathy", "I can tell how someone feels without being told.", false},
	{"empathy", "I stay patient when others are upset.", false},
}

var personalityQuestions = []seedQuestion{
	{"openness", "I enjoy trying new and unfamiliar activities.", false},
	{"openness", "I prefer routine over variety.", true},
	{"conscientiousness", "I finish tasks well before they are due.", false},
	{"conscientiousness", "I often leave my work unfinished.", true},
	{"extraversion", "I feel comfortable around new people.", false},
	{"extraversion", "I prefer to stay in the background.", true},
	{"agreeableness", "I go out of my way to help others.", false},
	{"agreeableness", "I find it hard to trust people.", true},
	{"emotional_stability", "I stay calm under pressure.", false},
	{"emotional_stability", "I worry about things a lot.", true},
}

func buildQuestions(items []seedQuestion) []model.AssessmentQuestion {
	questions := make([]model.AssessmentQuestion, 0, len(items))
	for i, q := range items {
		questions = append(questions, model.AssessmentQuestion{
			Category:      q.category,
			Text:          q.text,
			Position:      i + 1,
			ReverseScored: q.reverse,
		})
	}
	return questions
}

func seedAssessmentTypes() []model.AssessmentType {
	return []model.AssessmentType{
		{
			Slug:        model.AssessmentRIASEC,
			Name:        "Career Interests (RIASEC)",
			Description: "Measures interest in the six Holland work environments.",
			ScaleMax:    5,
			IsActive:    true,
			Questions:   buildQuestions(riasecQuestions),
		},
		{
			Slug:        model.AssessmentSkills,
			Name:        "Skills Self-Assessment",
			Description: "Self-rated proficiency across transferable skills.",
			ScaleMax:    5,
			IsActive:    true,
			Questions:   buildQuestions(skillQuestions),
		},
		{
			Slug:        model.AssessmentPersonality,
			Name:        "Personality (Big Five)",
			Description: "Short Big Five inventory used to compare work-style preferences.",
			ScaleMax:    5,
			IsActive:    true,
			Questions:   buildQuestions(personalityQuestions),
		},
	}
}

func profile(openness, conscientiousness, extraversion, agreeableness, stability float64) datatypes.JSONType[map[string]float64] {
	return datatypes.NewJSONType(map[string]float64{
		"openness":            openness,
		"conscientiousness":   conscientiousness,
		"extraversion":        extraversion,
		"agreeableness":       agreeableness,
		"emotional_stability": stability,
	})
}

func seedCareers() []model.Career {
	return []model.Career{
		{
			Slug: "software-developer", Title: "Software Developer", HollandCode: "ICR",
			Description: "Designs, builds and maintains software applications.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "programming", RequiredLevel: 80, Importance: 3},
				{Skill: "mathematics", RequiredLevel: 55, Importance: 2},
				{Skill: "communication", RequiredLevel: 50, Importance: 1},
			},
			PersonalityProfile: profile(70, 70, 40, 55, 60),
			EducationLevel:     "bachelor", MedianSalary: 120000, GrowthOutlook: "booming",
			Tags: datatypes.JSONSlice[string]{"technology", "remote-friendly"}, IsActive: true,
		},
		{
			Slug: "data-scientist", Title: "Data Scientist", HollandCode: "ICA",
			Description: "Extracts insight from data with statistics and machine learning.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "data_analysis", RequiredLevel: 80, Importance: 3},
				{Skill: "mathematics", RequiredLevel: 75, Importance: 3},
				{Skill: "programming", RequiredLevel: 65, Importance: 2},
				{Skill: "communication", RequiredLevel: 55, Importance: 1},
			},
			PersonalityProfile: profile(80, 70, 40, 50, 60),
			EducationLevel:     "master", MedianSalary: 108000, GrowthOutlook: "booming",
			Tags: datatypes.JSONSlice[string]{"technology", "analytics"}, IsActive: true,
		},
		{
			Slug: "graphic-designer", Title: "Graphic Designer", HollandCode: "AER",
			Description: "Creates visual concepts for print and digital media.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "design", RequiredLevel: 80, Importance: 3},
				{Skill: "communication", RequiredLevel: 55, Importance: 2},
			},
			PersonalityProfile: profile(85, 55, 50, 55, 50),
			EducationLevel:     "bachelor", MedianSalary: 58000, GrowthOutlook: "stable",
			Tags: datatypes.JSONSlice[string]{"creative", "media"}, IsActive: true,
		},
		{
			Slug: "registered-nurse", Title: "Registered Nurse", HollandCode: "SIC",
			Description: "Provides and coordinates patient care.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "empathy", RequiredLevel: 80, Importance: 3},
				{Skill: "communication", RequiredLevel: 70, Importance: 3},
				{Skill: "mathematics", RequiredLevel: 40, Importance: 1},
			},
			PersonalityProfile: profile(55, 80, 55, 80, 75),
			EducationLevel:     "bachelor", MedianSalary: 81000, GrowthOutlook: "growing",
			Tags: datatypes.JSONSlice[string]{"healthcare"}, IsActive: true,
		},
		{
			Slug: "school-counselor", Title: "School Counselor", HollandCode: "SAE",
			Description: "Helps students with academic, career and personal development.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "empathy", RequiredLevel: 85, Importance: 3},
				{Skill: "communication", RequiredLevel: 75, Importance: 3},
				{Skill: "writing", RequiredLevel: 50, Importance: 1},
			},
			PersonalityProfile: profile(65, 65, 60, 85, 70),
			EducationLevel:     "master", MedianSalary: 61000, GrowthOutlook: "stable",
			Tags: datatypes.JSONSlice[string]{"education"}, IsActive: true,
		},
		{
			Slug: "marketing-manager", Title: "Marketing Manager", HollandCode: "EAS",
			Description: "Plans campaigns to build demand for products and services.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "leadership", RequiredLevel: 70, Importance: 3},
				{Skill: "communication", RequiredLevel: 75, Importance: 3},
				{Skill: "data_analysis", RequiredLevel: 50, Importance: 2},
				{Skill: "writing", RequiredLevel: 55, Importance: 1},
			},
			PersonalityProfile: profile(70, 60, 80, 55, 60),
			EducationLevel:     "bachelor", MedianSalary: 140000, GrowthOutlook: "growing",
			Tags: datatypes.JSONSlice[string]{"business"}, IsActive: true,
		},
		{
			Slug: "accountant", Title: "Accountant", HollandCode: "CEI",
			Description: "Prepares and examines financial records.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "mathematics", RequiredLevel: 70, Importance: 3},
				{Skill: "data_analysis", RequiredLevel: 60, Importance: 2},
				{Skill: "writing", RequiredLevel: 40, Importance: 1},
			},
			PersonalityProfile: profile(40, 85, 40, 55, 65),
			EducationLevel:     "bachelor", MedianSalary: 79000, GrowthOutlook: "stable",
			Tags: datatypes.JSONSlice[string]{"finance", "business"}, IsActive: true,
		},
		{
			Slug: "electrician", Title: "Electrician", HollandCode: "RIC",
			Description: "Installs and maintains electrical systems.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "mechanical", RequiredLevel: 80, Importance: 3},
				{Skill: "mathematics", RequiredLevel: 50, Importance: 2},
			},
			PersonalityProfile: profile(45, 75, 45, 55, 70),
			EducationLevel:     "apprenticeship", MedianSalary: 61000, GrowthOutlook: "growing",
			Tags: datatypes.JSONSlice[string]{"trades"}, IsActive: true,
		},
		{
			Slug: "technical-writer", Title: "Technical Writer", HollandCode: "AIC",
			Description: "Writes manuals, guides and documentation.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "writing", RequiredLevel: 85, Importance: 3},
				{Skill: "communication", RequiredLevel: 60, Importance: 2},
				{Skill: "programming", RequiredLevel: 35, Importance: 1},
			},
			PersonalityProfile: profile(65, 75, 35, 55, 60),
			EducationLevel:     "bachelor", MedianSalary: 80000, GrowthOutlook: "stable",
			Tags: datatypes.JSONSlice[string]{"technology", "writing"}, IsActive: true,
		},
		{
			Slug: "project-manager", Title: "Project Manager", HollandCode: "ECS",
			Description: "Leads teams to deliver projects on time and budget.",
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "leadership", RequiredLevel: 80, Importance: 3},
				{Skill: "communication", RequiredLevel: 75, Importance: 3},
				{Skill: "data_analysis", RequiredLevel: 45, Importance: 1},
			},
			PersonalityProfile: profile(60, 85, 70, 65, 70),
			EducationLevel:     "bachelor", MedianSalary: 98000, GrowthOutlook: "growing",
			Tags: datatypes.JSONSlice[string]{"business", "management"}, IsActive: true,
		},
	}
}

type seedCourse struct {
	slug, title, provider, level string
	skills                       []string
	weeks                        int
	university                   string // slug, empty for online providers
}

var courseCatalog = []seedCourse{
	{"intro-programming-python", "Introduction to Programming with Python", "Open Campus", model.CourseBeginner, []string{"programming"}, 6, ""},
	{"software-construction", "Software Construction", "State Technical University", model.CourseIntermediate, []string{"programming"}, 10, "state-technical-university"},
	{"distributed-systems", "Distributed Systems", "State Technical University", model.CourseAdvanced, []string{"programming", "mathematics"}, 12, "state-technical-university"},
	{"statistics-101", "Statistics for Everyone", "Open Campus", model.CourseBeginner, []string{"mathematics", "data_analysis"}, 5, ""},
	{"applied-data-analysis", "Applied Data Analysis", "Riverside University", model.CourseIntermediate, []string{"data_analysis"}, 8, "riverside-university"},
	{"machine-learning", "Machine Learning", "Riverside University", model.CourseAdvanced, []string{"data_analysis", "mathematics", "programming"}, 12, "riverside-university"},
	{"linear-algebra", "Linear Algebra", "State Technical University", model.CourseIntermediate, []string{"mathematics"}, 10, "state-technical-university"},
	{"public-speaking", "Public Speaking Essentials", "Open Campus", model.CourseBeginner, []string{"communication"}, 4, ""},
	{"business-communication", "Business Communication", "Riverside University", model.CourseIntermediate, []string{"communication", "writing"}, 6, "riverside-university"},
	{"technical-writing", "Technical Writing", "Open Campus", model.CourseIntermediate, []string{"writing"}, 6, ""},
	{"visual-design-fundamentals", "Visual Design Fundamentals", "Lakeside College of Art", model.CourseBeginner, []string{"design"}, 6, "lakeside-college-of-art"},
	{"ux-studio", "UX Design Studio", "Lakeside College of Art", model.CourseAdvanced, []string{"design", "communication"}, 10, "lakeside-college-of-art"},
	{"team-leadership", "Leading Teams", "Riverside University", model.CourseIntermediate, []string{"leadership"}, 6, "riverside-university"},
	{"electrical-fundamentals", "Electrical Fundamentals", "Metro Trade Institute", model.CourseBeginner, []string{"mechanical"}, 8, ""},
	{"counseling-skills", "Foundations of Counseling", "Riverside University", model.CourseBeginner, []string{"empathy", "communication"}, 8, "riverside-university"},
}

func seedLocations() []model.Location {
	return []model.Location{
		{Slug: "springfield-us", City: "Springfield", Region: "IL", Country: "US"},
		{Slug: "riverside-us", City: "Riverside", Region: "CA", Country: "US"},
		{Slug: "lakeside-us", City: "Lakeside", Region: "OR", Country: "US"},
	}
}

func seedUniversities() []model.University {
	return []model.University{
		{Slug: "state-technical-university", Name: "State Technical University", Website: "https://stu.example.edu", Ranking: 42, Status: model.StatusPublished},
		{Slug: "riverside-university", Name: "Riverside University", Website: "https://riverside.example.edu", Ranking: 77, Status: model.StatusPublished},
		{Slug: "lakeside-college-of-art", Name: "Lakeside College of Art", Website: "https://lakeside.example.edu", Ranking: 120, Status: model.StatusPublished},
	}
}
