package request

import (
	"time"

	"table-booking/internal/usecase/commands"
)

type CreateEmergencyRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
}

func (r CreateEmergencyRequest) ToInput() commands.CreateEmergencyInput {
	return commands.CreateEmergencyInput{
		Name:        r.Name,
		Description: r.Description,
		Start:       r.StartAt,
		End:         r.EndAt,
	}
}
