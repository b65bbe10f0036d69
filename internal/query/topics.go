package query

// Modernization topics used to group recipes for dashboard filtering.
const (
	TopicParentPOM      = "parent-pom"
	TopicBOM            = "bom"
	TopicTestFrameworks = "test-frameworks"
	TopicDeprecatedAPIs = "deprecated-apis"
	// TopicOther is the sentinel for recipe ids absent from the table.
	TopicOther = "other"
)

// topicMap is a closed, hand-maintained table. Adding a recipe-to-topic
// mapping is a one-line change here; ids not listed map to TopicOther.
var topicMap = map[string]string{
	"io.jenkins.tools.pluginmodernizer.UpgradeNextMajorParentVersion": TopicParentPOM,
	"io.jenkins.tools.pluginmodernizer.SetupJenkinsfile":              TopicParentPOM,
	"io.jenkins.tools.pluginmodernizer.AddCodeOwner":                  TopicParentPOM,
	"io.jenkins.tools.pluginmodernizer.SetupDependabot":               TopicParentPOM,
	"io.jenkins.tools.pluginmodernizer.AutoMergeWorkflows":            TopicParentPOM,

	"io.jenkins.tools.pluginmodernizer.UpgradeToRecommendCoreVersion":    TopicBOM,
	"io.jenkins.tools.pluginmodernizer.UpgradeToLatestJava11CoreVersion": TopicBOM,

	"io.jenkins.tools.pluginmodernizer.MigrateToJUnit5":                      TopicTestFrameworks,
	"io.jenkins.tools.pluginmodernizer.MigrateToJava25":                      TopicTestFrameworks,
	"io.jenkins.tools.pluginmodernizer.RemoveOldJavaVersionForModernJenkins": TopicTestFrameworks,

	"io.jenkins.tools.pluginmodernizer.MigrateCommonsLang2ToLang3AndCommonText": TopicDeprecatedAPIs,
	"io.jenkins.tools.pluginmodernizer.FixJellyIssues":                          TopicDeprecatedAPIs,
	"io.jenkins.tools.pluginmodernizer.ReplaceLibrariesWithApiPlugin":           TopicDeprecatedAPIs,
}

// TopicForRecipe maps a recipe identifier to its topic, or TopicOther when
// the identifier is not in the table.
func TopicForRecipe(recipeID string) string {
	if topic, ok := topicMap[recipeID]; ok {
		return topic
	}
	return TopicOther
}

// Topics returns the fixed topic tab order.
func Topics() []string {
	return []string{TopicParentPOM, TopicBOM, TopicTestFrameworks, TopicDeprecatedAPIs}
}
