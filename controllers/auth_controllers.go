package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type AuthController struct {
	Engine *services.Engine
}

func NewAuthController(engine *services.Engine) *AuthController {
	return &AuthController{Engine: engine}
}

var errInvalidCredentials = errors.New("invalid credentials")

// Login checks a staff id and password and issues a token.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		StaffID  uint   `json:"staff_id" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	err := ac.Engine.Do(func() error {
		s, err := ac.Engine.Registry.StaffMember(input.StaffID)
		if err != nil {
			return err
		}
		staff = *s
		return nil
	})
	if errors.Is(err, services.ErrStaffNotFound) {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(input.Password)); err != nil {
		utils.InfoLogger.Printf("Failed login for staff %d", input.StaffID)
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(staff.ID, staff.Admin)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for %s (id=%d)", staff.Name(), staff.ID)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"staff": staff,
	})
}

// Logout revokes the presented token.
func (ac *AuthController) Logout(c *gin.Context) {
	expiry := time.Now().Add(24 * time.Hour)
	if claims, ok := c.Get("claims"); ok {
		if cc, ok := claims.(*utils.CustomClaims); ok && cc.ExpiresAt != nil {
			expiry = cc.ExpiresAt.Time
		}
	}
	utils.BlacklistToken(c.GetString("token"), expiry)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	id := c.GetUint("staff_id")

	var staff models.Staff
	err := ac.Engine.Do(func() error {
		s, err := ac.Engine.Registry.StaffMember(id)
		if err != nil {
			return err
		}
		staff = *s
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", staff)
}
