package judge

import (
	"fmt"
	"strings"

	"github.com/repograde/repograde/internal/models"
)

const submitScoresToolName = "submit_category_scores"

// categoryGuidance steers the model's attention for each category. The
// dimension list itself comes from the category definition.
var categoryGuidance = map[models.Category]string{
	models.CategoryTestAutomation: "Evaluate the automated testing in this repository: " +
		"coverage breadth, test code quality and readability, framework usage, " +
		"test organization, and how test data is managed.",
	models.CategoryCIPipeline: "Evaluate the CI/CD setup in this repository: " +
		"pipeline configuration quality, build automation, whether tests run in the " +
		"pipeline, deployment automation, and use of quality gates.",
	models.CategoryQualityProcess: "Evaluate the quality engineering process evident in " +
		"this repository: code review signals, documentation quality, bug tracking " +
		"practices, adherence to standards, and process maturity.",
	models.CategoryTechnicalSkills: "Evaluate the technical depth shown in this " +
		"repository: language proficiency, appropriate library and tool choices, " +
		"code craftsmanship, problem-solving approach, and architectural awareness.",
	models.CategoryRepositoryStructure: "Evaluate how this repository is organized: " +
		"directory layout, naming conventions, separation of concerns, dependency " +
		"manifest hygiene, and discoverability for a new contributor.",
}

// buildPrompt assembles the assessment prompt for one category. The model is
// instructed to report scores through the submit tool rather than prose.
func buildPrompt(category models.Category, excerpt string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert QA engineering assessor reviewing a candidate's repository.\n\n")
	sb.WriteString(categoryGuidance[category])
	sb.WriteString("\n\nScore each dimension from 0 (absent) to 10 (exemplary):\n")
	for _, dim := range category.Dimensions() {
		fmt.Fprintf(&sb, "  - %s\n", dim)
	}
	sb.WriteString("\nBe strict: reserve 8-10 for genuinely excellent work, and score 0 ")
	sb.WriteString("when there is no evidence for a dimension.\n\n")
	sb.WriteString("## Repository content\n\n")
	sb.WriteString(excerpt)
	fmt.Fprintf(&sb, "\nCall %s exactly once with every dimension score and a short reasoning.\n", submitScoresToolName)

	return sb.String()
}
