package controller

import (
	"errors"
	"net/http"

	deals "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/domain"
)

type applicationPayload struct {
	ID              string `json:"id"`
	CampaignID      string `json:"campaignId"`
	CampaignTitle   string `json:"campaignTitle"`
	CampaignOwnerID string `json:"campaignOwnerId"`
	ApplicantID     string `json:"applicantId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	CreatedAt       int64  `json:"createdAt"`
}

func toApplicationPayload(a deals.Application) applicationPayload {
	return applicationPayload{
		ID:              a.ID,
		CampaignID:      a.CampaignID,
		CampaignTitle:   a.CampaignTitle,
		CampaignOwnerID: a.CampaignOwnerID,
		ApplicantID:     a.ApplicantID,
		Title:           a.Title,
		Description:     a.Description,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt.UnixMilli(),
	}
}

type invitePayload struct {
	ID            string `json:"id"`
	CampaignID    string `json:"campaignId"`
	CampaignTitle string `json:"campaignTitle"`
	BusinessID    string `json:"businessId"`
	CreatorID     string `json:"creatorId"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"createdAt"`
}

func toInvitePayload(inv deals.Invite) invitePayload {
	return invitePayload{
		ID:            inv.ID,
		CampaignID:    inv.CampaignID,
		CampaignTitle: inv.CampaignTitle,
		BusinessID:    inv.BusinessID,
		CreatorID:     inv.CreatorID,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt.UnixMilli(),
	}
}

type decideRequest struct {
	Status string `json:"status" binding:"required"`
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, deals.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, deals.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, deals.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, deals.ErrInvalidStatus), errors.Is(err, deals.ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, deals.ErrAlreadyProcessed):
		return "ALREADY_PROCESSED"
	default:
		return "SERVER_ERROR"
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, deals.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, deals.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, deals.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, deals.ErrInvalidStatus), errors.Is(err, deals.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, deals.ErrAlreadyProcessed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
