package queue

import (
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/service"
)

type Queue struct {
	cp repository.ContentPostRepository
	pa repository.PostAssignmentRepository
	sa repository.SocialAccountRepository
	ph repository.PublishHistoryRepository
	fb service.FacebookService
	gs service.GoogleService
}

func NewQueue(
	cp repository.ContentPostRepository,
	pa repository.PostAssignmentRepository,
	sa repository.SocialAccountRepository,
	ph repository.PublishHistoryRepository,
	fb service.FacebookService,
	gs service.GoogleService) *Queue {
	return &Queue{
		cp: cp,
		pa: pa,
		sa: sa,
		ph: ph,
		fb: fb,
		gs: gs,
	}
}

const TaskTypePublishAssignment = "publish:assignment"

type PublishAssignmentPayload struct {
	AssignmentID int64 `json:"assignment_id"`
}
