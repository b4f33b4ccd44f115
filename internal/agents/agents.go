// internal/agents/agents.go
package agents

// Role identifies which agent produced a transcript line
type Role int

const (
	RoleUnknown Role = iota
	RoleSecurityTeacher
	RoleAttackAnalysis
	RoleCodeWriter
	RoleCodeExecutor
	RoleExploitWriter
	RoleExploitExecutor
	RoleResultAnalyzer
	RoleKnowledgeAssistant
)

// Parse maps an agent identifier to its role.
// Identifiers outside the known set are valid and map to RoleUnknown.
func Parse(id string) Role {
	switch id {
	case "security_teacher":
		return RoleSecurityTeacher
	case "attack_analysis_agent":
		return RoleAttackAnalysis
	case "code_writer_agent":
		return RoleCodeWriter
	case "code_executor_agent":
		return RoleCodeExecutor
	case "exploit_writer_agent":
		return RoleExploitWriter
	case "exploit_executor_agent":
		return RoleExploitExecutor
	case "result_analyzer_agent":
		return RoleResultAnalyzer
	case "knowledge_assistant":
		return RoleKnowledgeAssistant
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleSecurityTeacher:
		return "security_teacher"
	case RoleAttackAnalysis:
		return "attack_analysis_agent"
	case RoleCodeWriter:
		return "code_writer_agent"
	case RoleCodeExecutor:
		return "code_executor_agent"
	case RoleExploitWriter:
		return "exploit_writer_agent"
	case RoleExploitExecutor:
		return "exploit_executor_agent"
	case RoleResultAnalyzer:
		return "result_analyzer_agent"
	case RoleKnowledgeAssistant:
		return "knowledge_assistant"
	default:
		return "unknown"
	}
}

// Icon returns the glyph for a role. Unknown roles have no icon.
func Icon(r Role) (string, bool) {
	switch r {
	case RoleSecurityTeacher:
		return "⛨", true // shield
	case RoleAttackAnalysis:
		return "◉", true // brain
	case RoleCodeWriter, RoleExploitWriter:
		return "</>", true
	case RoleCodeExecutor, RoleExploitExecutor:
		return ">_", true // terminal
	case RoleResultAnalyzer:
		return "▥", true // bar chart
	case RoleKnowledgeAssistant:
		return "▤", true // book
	default:
		return "", false
	}
}

// IconFor resolves an agent identifier straight to its glyph
func IconFor(id string) (string, bool) {
	return Icon(Parse(id))
}

// DisplayName returns a human readable name for an agent identifier
func DisplayName(id string) string {
	switch Parse(id) {
	case RoleSecurityTeacher:
		return "Security Teacher"
	case RoleAttackAnalysis:
		return "Attack Analysis"
	case RoleCodeWriter:
		return "Code Writer"
	case RoleCodeExecutor:
		return "Code Executor"
	case RoleExploitWriter:
		return "Exploit Writer"
	case RoleExploitExecutor:
		return "Exploit Executor"
	case RoleResultAnalyzer:
		return "Result Analyzer"
	case RoleKnowledgeAssistant:
		return "Knowledge Assistant"
	default:
		return id
	}
}

// Known returns every role with an icon, in display order
func Known() []Role {
	return []Role{
		RoleSecurityTeacher,
		RoleAttackAnalysis,
		RoleCodeWriter,
		RoleCodeExecutor,
		RoleExploitWriter,
		RoleExploitExecutor,
		RoleResultAnalyzer,
		RoleKnowledgeAssistant,
	}
}
