package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repositories
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	CourseRepository      *CourseRepository
	PlanRepository        *PlanRepository
	RequirementRepository *RequirementRepository
}

// NewRepositories creates a new container with all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		CourseRepository:      NewCourseRepository(db),
		PlanRepository:        NewPlanRepository(db),
		RequirementRepository: NewRequirementRepository(db),
	}
}
