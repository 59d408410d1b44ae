package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type StaffController struct {
	Engine *services.Engine
}

func NewStaffController(engine *services.Engine) *StaffController {
	return &StaffController{Engine: engine}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var list []models.Staff
	err := sc.Engine.Do(func() error {
		for _, s := range sc.Engine.Registry.StaffList() {
			list = append(list, *s)
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.Staff{}
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", list)
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Admin     bool   `json:"admin"`
		Password  string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staff := models.Staff{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Admin:     req.Admin,
		Password:  hashed,
	}
	var created models.Staff
	err = sc.Engine.Do(func() error {
		s := staff
		if err := sc.Engine.Registry.AddStaff(&s); err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Staff member %s added (id=%d, admin=%t)", created.Name(), created.ID, created.Admin)
	utils.RespondJSON(c, http.StatusCreated, "Staff member created", created)
}

// UpdateStaff edits a profile. Staff may edit themselves; only admins may
// edit others or change the admin flag.
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c, "staff_id")
	if !ok {
		return
	}
	if !sc.allowed(c, id) {
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
		Admin     *bool   `json:"admin"`
		Password  *string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Admin != nil && !c.GetBool("admin") {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("first name must not be empty"))
		return
	}

	var hashed string
	if req.Password != nil {
		var err error
		if hashed, err = HashPassword(*req.Password); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	var updated models.Staff
	err := sc.Engine.Do(func() error {
		s, err := sc.Engine.Registry.UpdateStaff(id, func(s *models.Staff) {
			if req.FirstName != nil {
				s.FirstName = strings.TrimSpace(*req.FirstName)
			}
			if req.LastName != nil {
				s.LastName = strings.TrimSpace(*req.LastName)
			}
			if req.Phone != nil {
				s.Phone = strings.TrimSpace(*req.Phone)
			}
			if req.Admin != nil {
				s.Admin = *req.Admin
			}
			if hashed != "" {
				s.Password = hashed
			}
		})
		if err != nil {
			return err
		}
		updated = *s
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff member updated", updated)
}

// SetPresence clocks a staff member on or off the floor.
func (sc *StaffController) SetPresence(c *gin.Context) {
	id, ok := parseID(c, "staff_id")
	if !ok {
		return
	}
	if !sc.allowed(c, id) {
		return
	}

	var req struct {
		Present *bool `json:"present" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	err := sc.Engine.Do(func() error {
		s, err := sc.Engine.Registry.SetPresent(id, *req.Present)
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

	utils.InfoLogger.Printf("Staff member %s present=%t", staff.Name(), staff.Present)
	utils.RespondJSON(c, http.StatusOK, "Staff presence updated", staff)
}

func (sc *StaffController) allowed(c *gin.Context, id uint) bool {
	if c.GetBool("admin") || c.GetUint("staff_id") == id {
		return true
	}
	utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
	return false
}
