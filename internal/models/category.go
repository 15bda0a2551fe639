package models

// Category identifies one of the fixed QA assessment dimensions.
type Category string

const (
	CategoryTestAutomation      Category = "test_automation"
	CategoryCIPipeline          Category = "ci_pipeline"
	CategoryQualityProcess      Category = "quality_process"
	CategoryTechnicalSkills     Category = "technical_skills"
	CategoryRepositoryStructure Category = "repository_structure"
)

// Categories returns all tracked categories in canonical order. The order is
// load-bearing: the insight extractor and the JSON export iterate it.
func Categories() []Category {
	return []Category{
		CategoryTestAutomation,
		CategoryCIPipeline,
		CategoryQualityProcess,
		CategoryTechnicalSkills,
		CategoryRepositoryStructure,
	}
}

var categoryDimensions = map[Category][]string{
	CategoryTestAutomation: {
		"test_coverage_score",
		"test_organization_score",
		"framework_usage_score",
		"assertion_quality_score",
		"test_data_management_score",
	},
	CategoryCIPipeline: {
		"pipeline_configuration_score",
		"automated_testing_integration_score",
		"deployment_automation_score",
		"pipeline_efficiency_score",
		"environment_management_score",
	},
	CategoryQualityProcess: {
		"testing_strategy_score",
		"bug_tracking_score",
		"code_review_process_score",
		"documentation_quality_score",
		"collaboration_score",
	},
	CategoryTechnicalSkills: {
		"test_design_patterns_score",
		"api_testing_score",
		"ui_testing_score",
		"performance_testing_score",
		"security_testing_score",
	},
	CategoryRepositoryStructure: {
		"project_structure_score",
		"test_structure_score",
		"configuration_management_score",
		"dependency_management_score",
		"version_control_practices_score",
	},
}

// Valid reports whether c is one of the tracked categories.
func (c Category) Valid() bool {
	_, ok := categoryDimensions[c]
	return ok
}

// Dimensions returns the ordered sub-score names for the category.
// Unknown categories return nil.
func (c Category) Dimensions() []string {
	return categoryDimensions[c]
}

func (c Category) String() string {
	return string(c)
}
