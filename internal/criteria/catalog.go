// Package criteria holds the fixed evaluation catalog: which items a judge
// scores for resume and video review, their base weights and skill tags, and
// the per-position hard/soft profiles. Everything here is an immutable lookup;
// callers pass the returned data into the scoring package explicitly.
package criteria

// SkillType tags a criterion item for position-specific weight rebalancing.
type SkillType string

const (
	Hard SkillType = "hard"
	Soft SkillType = "soft"
)

// Item is one scorable line on the evaluation form. Weight is the base
// percentage before position rebalancing; Skill is empty only for the
// motivation item, which is never rebalanced.
type Item struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Weight      float64   `json:"weight"`
	Skill       SkillType `json:"skill,omitempty"`
}

// Group is a titled section of the form.
type Group struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Resume returns the resume evaluation groups for a position: two hard-skill
// items (base 15 + 10) and two soft-skill items (base 10 + 5). Labels and
// descriptions vary by position; IDs, weights and skill tags never do.
func Resume(p Position) []Group {
	groups := []Group{
		{
			Title: "Hard Skills Assessment",
			Items: []Item{
				{ID: "resume_technical", Weight: 15, Skill: Hard,
					Label:       "Technical Proficiency",
					Description: "Relevant courses, technical training, and professional knowledge"},
				{ID: "resume_experience", Weight: 10, Skill: Hard,
					Label:       "Relevant Experience",
					Description: "Relevant internships and project experience"},
			},
		},
		{
			Title: "Soft Skills Assessment",
			Items: []Item{
				{ID: "resume_leadership", Weight: 10, Skill: Soft,
					Label:       "Extracurricular & Leadership",
					Description: "Team collaboration, activity participation, and leadership experience"},
				{ID: "resume_presentation", Weight: 5, Skill: Soft,
					Label:       "Resume Presentation",
					Description: "Resume format, organization, and professional presentation"},
			},
		},
	}

	switch p {
	case FinancialAnalyst:
		groups[0].Items[0].Label = "Financial Modeling & Valuation"
		groups[0].Items[0].Description = "Financial modeling, valuation analysis, and investment return calculation"
		groups[0].Items[1].Label = "Financial Analysis & Investment Experience"
		groups[0].Items[1].Description = "Financial analysis, due diligence, and investment justification"
		groups[1].Items[0].Label = "Networking & Relationship Building"
		groups[1].Items[0].Description = "Industry network building and investor relations management"
	case ResearchAnalyst:
		groups[0].Items[0].Label = "Market & Industry Trend Analysis"
		groups[0].Items[0].Description = "Market intelligence gathering and industry trend analysis"
		groups[0].Items[1].Label = "Data Analysis & Research Methods"
		groups[0].Items[1].Description = "Data analysis tools and research methodology application"
		groups[1].Items[0].Label = "Learning Agility for Emerging Trends"
		groups[1].Items[0].Description = "Adaptability and acuity in identifying emerging trends"
	case OperationsAnalyst:
		groups[0].Items[0].Label = "Business Process Optimization"
		groups[0].Items[0].Description = "Business process analysis and optimization design"
		groups[0].Items[1].Label = "Project Management & Operations"
		groups[0].Items[1].Description = "Project management and business operations support"
		groups[1].Items[0].Label = "Adaptability & Problem Solving"
		groups[1].Items[0].Description = "Adaptability to challenges and innovative solution development"
	}
	return groups
}

// Video returns the video evaluation groups for a position: two hard-skill
// content items (base 12.5 each) and three soft-skill presentation items
// (base 8.33 each).
func Video(p Position) []Group {
	groups := []Group{
		{
			Title: "Content Quality Assessment (25%)",
			Items: []Item{
				{ID: "content_understanding", Weight: 12.5, Skill: Hard,
					Label:       "Product & Market Understanding",
					Description: "Analysis of Sertie's value proposition and market opportunities"},
				{ID: "content_marketing", Weight: 12.5, Skill: Hard,
					Label:       "Marketing Strategy Analysis",
					Description: "Evaluation of current marketing and Premium Service promotion plan"},
			},
		},
		{
			Title: "Presentation Skills Assessment (25%)",
			Items: []Item{
				{ID: "presentation_creativity", Weight: 8.33, Skill: Soft,
					Label:       "Creative Expression",
					Description: "Uniqueness of video format and personal style presentation"},
				{ID: "presentation_clarity", Weight: 8.33, Skill: Soft,
					Label:       "Communication Clarity",
					Description: "Accuracy and fluency of information delivery"},
				{ID: "presentation_structure", Weight: 8.33, Skill: Soft,
					Label:       "Structure & Time Management",
					Description: "Completeness of content organization and reasonable time allocation within 3 minutes"},
			},
		},
	}

	switch p {
	case FinancialAnalyst:
		groups[0].Items[0].Description += ", with focus on business model and profitability analysis"
		groups[0].Items[1].Description += ", with focus on ROI and budget allocation analysis"
		groups[1].Items[1].Label = "Investment Proposal Presentation"
		groups[1].Items[1].Description = "Clarity and persuasiveness of investment logic presentation"
	case ResearchAnalyst:
		groups[0].Items[0].Description += ", with focus on market opportunity assessment and data support"
		groups[0].Items[1].Description += ", with focus on target user insights and effect prediction"
		groups[1].Items[1].Label = "Research Findings Presentation"
		groups[1].Items[1].Description = "Clarity of research conclusions and insights presentation"
	case OperationsAnalyst:
		groups[0].Items[0].Description += ", with focus on service improvement and user experience optimization"
		groups[0].Items[1].Description += ", with focus on execution planning and operability"
		groups[1].Items[1].Label = "Stakeholder Management"
		groups[1].Items[1].Description = "Clarity and effectiveness of communication with various parties"
	}
	return groups
}

// Motivation returns the single fixed motivation item (10% of the final
// score, no skill tag, never rebalanced).
func Motivation() Item {
	return Item{
		ID:          "motivation_enthusiasm",
		Label:       "Career Plan Alignment",
		Description: "Enthusiasm for the position and alignment with career plans",
		Weight:      10,
	}
}
