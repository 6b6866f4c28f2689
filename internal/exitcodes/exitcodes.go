package exitcodes

// Exit codes for the repo-sweep CLI
// These codes form the operational contract with CI/CD and operators
const (
	Success       = 0 // Successful execution (including nothing-to-do runs)
	InvalidConfig = 2 // Configuration or plan file invalid or missing
	Declined      = 3 // Operator declined the confirmation gate
	RuntimeError  = 4 // Working directory inaccessible or hard failures during execution
)
