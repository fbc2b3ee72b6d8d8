package domain

import "errors"

var (
	ErrInsufficientParticipants = errors.New("fewer than 2 participants")
	ErrTooManyParticipants      = errors.New("too many participants for exhaustive split")
	ErrMatchNotFound            = errors.New("match not found")
	ErrMatchAlreadyResolved     = errors.New("match already resolved")
	ErrInvalidWinnerSide        = errors.New("winner must be A or B")
	ErrInvalidRole              = errors.New("unknown lane role")
	ErrLaneTeamNotFound         = errors.New("lane team not found")
	ErrSameTeam                 = errors.New("winner and loser team are the same")
	ErrNoOpenSignup             = errors.New("no open signup")
)
