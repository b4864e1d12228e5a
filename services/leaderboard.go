package services

import (
	"sort"

	"github.com/shaymimran45/CTF-WAR-2/repository"
)

// LeaderboardScope 排行榜口径：个人或队伍
type LeaderboardScope string

const (
	ScopeIndividual LeaderboardScope = "individual"
	ScopeTeam       LeaderboardScope = "team"
)

// LeaderboardService 每次查询都从 solves 表全量重算，不维护增量索引
type LeaderboardService struct {
	solves repository.SolveRepository
}

func NewLeaderboardService(solves repository.SolveRepository) *LeaderboardService {
	return &LeaderboardService{solves: solves}
}

// Rank 聚合并排序。排序规则：总分高者在前；同分时先达到该分数者
// （last_solve_at 更早）在前，从未解题的排在同分末尾
func (s *LeaderboardService) Rank(scope LeaderboardScope) ([]repository.ScoreRow, error) {
	var (
		rows []repository.ScoreRow
		err  error
	)
	if scope == ScopeTeam {
		rows, err = s.solves.AggregateTeams()
	} else {
		rows, err = s.solves.AggregateUsers()
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.LastSolveAt != nil && b.LastSolveAt != nil {
			return a.LastSolveAt.Before(*b.LastSolveAt)
		}
		return a.LastSolveAt != nil
	})
	return rows, nil
}
