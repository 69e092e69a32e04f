// model/neo4j/properties.go
package gate_neo4j

// Protection metadata is stored as string-keyed node properties so the host
// can read it back without knowing our types.
const (
	PropProtected          = "protected"
	PropRequiredProductIDs = "requiredProductIds"
	PropCustomMessage      = "customMessage"
)

// Boolean-as-string values of PropProtected.
const (
	ProtectedOn  = "1"
	ProtectedOff = "0"
)
