package decide

import (
	"github.com/invopop/jsonschema"

	"github.com/josephmalisov/pathpilot/internal/ai"
)

const PathPlanToolName = "PathPlan_response"

type pathPlanArgs struct {
	IsPathPlan bool `json:"is_pathPlan" jsonschema:"description=Whether this message contains a plan"`
}

// pathPlanTool is offered to every run so the assistant can flag a finished plan.
// It is never executed; the flag is read back from the message text.
func pathPlanTool() ai.ToolSpec {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(&pathPlanArgs{})
	schema.Version = ""

	return ai.ToolSpec{
		Name:        PathPlanToolName,
		Description: "Indicates that this message contains a plan",
		Parameters:  schema,
	}
}
