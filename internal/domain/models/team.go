package models

// Team is the client team bucket a trade is attributed to.
type Team string

const (
	TeamAdvisory    Team = "投顾团队"
	TeamMarketing   Team = "营销团队"
	TeamIndependent Team = "独立客户"
)

// Teams lists every team in presentation order.
var Teams = []Team{TeamAdvisory, TeamMarketing, TeamIndependent}
