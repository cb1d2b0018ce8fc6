package schema

import (
	"testing"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

func tableWith(headers []string, rows ...[]string) *table.Table {
	t := table.New(headers)
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

func TestDetectLeadListHeaders(t *testing.T) {
	tbl := tableWith(
		[]string{"Data", "Status do Negócio", "E-mail", "Responsável"},
		[]string{"01/02/2025", "Em andamento", "a@b.com", "Carla"},
	)

	roles := Detect(tbl)

	want := map[Role]string{
		RoleDate:   "Data",
		RoleStatus: "Status do Negócio",
		RoleEmail:  "E-mail",
		RoleOwner:  "Responsável",
	}
	for role, col := range want {
		if roles.Column(role) != col {
			t.Errorf("role %s = %q, want %q", role, roles.Column(role), col)
		}
	}
	if roles.Has(RoleSource) {
		t.Errorf("source should be unassigned, got %q", roles.Column(RoleSource))
	}
	if roles.Has(RolePhone) {
		t.Errorf("phone should be unassigned, got %q", roles.Column(RolePhone))
	}
}

func TestDetectLeftmostWins(t *testing.T) {
	tbl := tableWith(
		[]string{"Data de Criação", "Data de Fechamento"},
		[]string{"01/02/2025", "05/02/2025"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleDate) != "Data de Criação" {
		t.Errorf("date = %q, want leftmost column", roles.Column(RoleDate))
	}
}

func TestDetectAccentInsensitive(t *testing.T) {
	tbl := tableWith(
		[]string{"Situação", "Telefone", "Mídia"},
		[]string{"aberto", "11999998888", "facebook"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleStatus) != "Situação" {
		t.Errorf("status = %q, want Situação", roles.Column(RoleStatus))
	}
	if roles.Column(RolePhone) != "Telefone" {
		t.Errorf("phone = %q, want Telefone", roles.Column(RolePhone))
	}
	if roles.Column(RoleSource) != "Mídia" {
		t.Errorf("source = %q, want Mídia", roles.Column(RoleSource))
	}
}

func TestDetectAdsSheet(t *testing.T) {
	tbl := tableWith(
		[]string{"Data", "Criativo", "Leads", "MQLs", "Investimento", "CPL", "CPMQL"},
		[]string{"01/02/2025", "video-01", "12", "3", "150,00", "12,50", "50,00"},
	)

	roles := Detect(tbl)

	if roles.Column(RoleCreative) != "Criativo" {
		t.Errorf("creative = %q, want Criativo", roles.Column(RoleCreative))
	}
	if roles.Column(RoleLeadCount) != "Leads" {
		t.Errorf("lead_count = %q, want Leads", roles.Column(RoleLeadCount))
	}
	if roles.Column(RoleMQLCount) != "MQLs" {
		t.Errorf("mql_count = %q, want MQLs", roles.Column(RoleMQLCount))
	}
	if roles.Column(RoleCost) != "Investimento" {
		t.Errorf("cost = %q, want Investimento", roles.Column(RoleCost))
	}
	// CPL must never be taken for the lead count.
	if roles.Column(RoleLeadCount) == "CPL" || roles.Column(RoleMQLCount) == "CPMQL" {
		t.Error("cost-per columns claimed as counts")
	}
}

func TestDetectNameNotStolenByLeadCount(t *testing.T) {
	tbl := tableWith(
		[]string{"Nome do Lead", "Telefone"},
		[]string{"Maria", "11988887777"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleName) != "Nome do Lead" {
		t.Errorf("name = %q, want Nome do Lead", roles.Column(RoleName))
	}
	if roles.Has(RoleLeadCount) {
		t.Errorf("lead_count should be unassigned, got %q", roles.Column(RoleLeadCount))
	}
}

func TestDetectNameFallbackFirstColumn(t *testing.T) {
	tbl := tableWith(
		[]string{"Pessoa", "Whatsapp"},
		[]string{"João", "11988887777"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleName) != "Pessoa" {
		t.Errorf("name fallback = %q, want first unclaimed column", roles.Column(RoleName))
	}
}

func TestDetectNameFallbackSkipsDateColumns(t *testing.T) {
	tbl := tableWith(
		[]string{"Data de Criação", "Data de Fechamento"},
		[]string{"01/02/2025", "05/02/2025"},
	)

	roles := Detect(tbl)
	if roles.Has(RoleName) {
		t.Errorf("name should be unassigned, got %q", roles.Column(RoleName))
	}
}

func TestDetectCreativeFreeTextFallback(t *testing.T) {
	tbl := tableWith(
		[]string{"Data", "Peça", "Leads", "CPL"},
		[]string{"01/02/2025", "banner-azul", "10", "1,20"},
		[]string{"02/02/2025", "banner-verde", "4", "2,10"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleCreative) != "Peça" {
		t.Errorf("creative fallback = %q, want Peça", roles.Column(RoleCreative))
	}
}

func TestDetectNoCreativeWhenAllNumeric(t *testing.T) {
	tbl := tableWith(
		[]string{"Leads", "CPL"},
		[]string{"10", "1,20"},
	)

	roles := Detect(tbl)
	if roles.Has(RoleCreative) {
		t.Errorf("creative should be unassigned, got %q", roles.Column(RoleCreative))
	}
}

func TestDetectColumnHoldsSingleRole(t *testing.T) {
	tbl := tableWith(
		[]string{"Origem da Campanha"},
		[]string{"meta"},
	)

	roles := Detect(tbl)
	if roles.Column(RoleSource) != "Origem da Campanha" {
		t.Fatalf("source = %q", roles.Column(RoleSource))
	}
	if roles.Column(RoleCampaign) == "Origem da Campanha" {
		t.Error("column claimed by two roles")
	}
}
