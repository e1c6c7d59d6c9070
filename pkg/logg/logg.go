package logg

// Field keys shared by every layer's zap logger.
const (
	Layer      = "layer"
	Operation  = "operation"
	URL        = "url"
	Selector   = "selector"
	Locator    = "locator"
	Condition  = "condition"
	ElementID  = "element_id"
	ScenarioID = "scenario_id"
	Step       = "step"
	Timeout    = "timeout"
)
