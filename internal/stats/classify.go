package stats

import "github.com/guttosm/signstats/internal/domain/models"

// notAvailable is the contract-status value meaning "no contract on record".
const notAvailable = "#N/A"

// departmentTeams maps department names to teams. Departments not listed
// belong to models.TeamIndependent.
var departmentTeams = map[string]models.Team{
	"财富中心": models.TeamAdvisory,
	"营销中心": models.TeamMarketing,
}

// Classify derives the contracted/margin flags and the team of a record.
// It never fails: unknown or empty departments fall back to the independent team.
func Classify(rec models.TradeRecord) models.ClassifiedTrade {
	return models.ClassifiedTrade{
		TradeRecord: rec,
		Contracted:  rec.ContractMarker != "" && rec.ContractMarker != notAvailable,
		Margin:      rec.MarginMarker != "",
		Team:        TeamOf(rec.Department),
	}
}

// TeamOf returns the team a department belongs to.
func TeamOf(department string) models.Team {
	if t, ok := departmentTeams[department]; ok {
		return t
	}
	return models.TeamIndependent
}
