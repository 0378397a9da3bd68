package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUC
	logger         logger.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUC, logger logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, logger: logger}
}

// getProfile
//
//	@Summary	Профиль покупателя
//	@Tags		profile
//	@Produce	json
//	@Param		X-Customer-ID	header		string	true	"Покупатель"
//	@Success	200				{object}	ProfileResponse
//	@Failure	404				{object}	ErrorResponse
//	@Router		/profile [get]
func (p *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	profile, err := p.profileUsecase.GetProfile(r.Context(), customer)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileResponse(profile))
}

// updateProfile
//
//	@Summary	Обновить профиль
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Param		X-Customer-ID	header		string					true	"Покупатель"
//	@Param		body			body		UpdateProfileRequest	true	"Поля профиля"
//	@Success	200				{object}	ProfileResponse
//	@Router		/profile [put]
func (p *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	profile, err := p.profileUsecase.UpdateProfile(r.Context(), customer, req.toUpdate())
	if err != nil {
		p.logger.Warnf("update profile: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileResponse(profile))
}
