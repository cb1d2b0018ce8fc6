// Package schema assigns semantic roles to spreadsheet columns from their
// free-text headers. Detection is a prioritized keyword scan: policy lives
// in the rule table below, not in per-role code, so adding or reordering a
// rule never touches the scanner.
package schema

// Role identifies the semantic meaning of a column.
type Role string

const (
	RoleDate      Role = "date"
	RoleStatus    Role = "status"
	RoleSource    Role = "source"
	RoleOwner     Role = "owner"
	RoleEmail     Role = "email"
	RolePhone     Role = "phone"
	RoleCost      Role = "cost"
	RoleLeadCount Role = "lead_count"
	RoleMQLCount  Role = "mql_count"
	RoleName      Role = "name"
	RoleCampaign  Role = "campaign"
	RoleCreative  Role = "creative"
)

// RoleMap maps each detected role to the original column header. A role
// maps to at most one column and a column holds at most one role; missing
// entries mean the feature backed by that role is unavailable.
type RoleMap map[Role]string

// Has reports whether the role was assigned.
func (m RoleMap) Has(r Role) bool {
	_, ok := m[r]
	return ok
}

// Column returns the header assigned to the role, or "".
func (m RoleMap) Column(r Role) string {
	return m[r]
}

// HasIdentity reports whether at least one identity column (email, phone
// or name) was assigned, the precondition for reconciliation.
func (m RoleMap) HasIdentity() bool {
	return m.Has(RoleEmail) || m.Has(RolePhone) || m.Has(RoleName)
}

// rule is one detection policy entry: a header matches when it contains
// any keyword and none of the exclusions. Rules run in declaration order;
// for each rule the leftmost unclaimed matching column wins.
type rule struct {
	role     Role
	keywords []string
	exclude  []string
}

// metricKeywords name numeric campaign metrics. Columns whose header is one
// of these are never creative identifiers.
var metricKeywords = []string{
	"lead", "leads", "mql", "mqls", "cliques", "impressoes", "impressao",
	"investimento", "custo", "cpl", "cpmql", "cpc", "cpm", "ctr",
	"conversao", "taxa", "alcance", "reach",
}

// Count and cost rules run before the name rule so "Leads" is claimed as a
// metric column, not mistaken for a contact-name column.
var rules = []rule{
	{role: RoleDate, keywords: []string{"data", "date", "dia"}},
	{role: RoleStatus, keywords: []string{"status", "etapa", "stage", "situacao", "fase", "pipeline", "mql"}, exclude: []string{"cpmql", "mqls", "count_"}},
	{role: RoleSource, keywords: []string{"origem", "source", "fonte", "canal", "utm", "campanha", "midia"}},
	{role: RoleOwner, keywords: []string{"respons", "consultor", "vendedor", "owner", "account"}},
	{role: RoleEmail, keywords: []string{"email", "e-mail", "mail"}},
	{role: RolePhone, keywords: []string{"fone", "telefone", "phone", "celular", "whats", "tel"}},
	{role: RoleCost, keywords: []string{"investimento", "investido", "custo", "cost"}, exclude: []string{"habilidade"}},
	{role: RoleLeadCount, keywords: []string{"lead"}, exclude: []string{"cpl", "nome", "name", "contato", "cliente"}},
	{role: RoleMQLCount, keywords: []string{"mql"}, exclude: []string{"cpmql", "custo"}},
	{role: RoleName, keywords: []string{"nome", "name", "lead", "contato", "cliente"}},
	{role: RoleCampaign, keywords: []string{"campanha", "campaign"}},
	{role: RoleCreative, keywords: []string{"criativo", "creative", "conteudo", "content", "anuncio", "banner", "copy", "headline", "titulo"}, exclude: metricKeywords},
}
