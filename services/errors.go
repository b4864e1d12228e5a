package services

import "errors"

// 领域错误集合，controller 层负责映射到 HTTP 状态码。
// 存储层的原始错误（唯一约束冲突等）必须在 service 层翻译成这里的错误，不外泄。
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadySolved     = errors.New("challenge already solved")
	ErrAttemptsExceeded  = errors.New("max attempts reached")

	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameTaken    = errors.New("team name already exists")
	ErrTeamFull         = errors.New("team is full")
	ErrAlreadyInTeam    = errors.New("user already in a team")
	ErrNotInTeam        = errors.New("not in a team")
	ErrNotLeader        = errors.New("only the team leader can do this")
	ErrCannotKickLeader = errors.New("leader cannot be kicked")
	ErrMemberNotFound   = errors.New("member not in your team")
)
