// model/neo4j/nodes.go
package gate_neo4j

// Node Labels
const (
	// LabelContent represents a post or page that may carry protection settings
	LabelContent = "Content"

	// LabelWidget represents a placed sidebar widget instance
	LabelWidget = "Widget"

	// LabelUser represents the editor that last changed a node
	LabelUser = "User"
)

// Relationship Types
const (
	// RelUpdatedBy links a content node to the editor who last saved its settings
	RelUpdatedBy = "UPDATED_BY"
)
