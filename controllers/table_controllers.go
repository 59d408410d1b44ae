package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-floor/geometry"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type TableController struct {
	Engine   *services.Engine
	Defaults services.TableDefaults
}

func NewTableController(engine *services.Engine, defaults services.TableDefaults) *TableController {
	return &TableController{Engine: engine, Defaults: defaults}
}

// CreateTable adds a table with the configured defaults. Position and shape
// may be overridden in the body.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		X     *float64        `json:"x"`
		Y     *float64        `json:"y"`
		Shape *geometry.Shape `json:"shape"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	defaults := tc.Defaults
	if req.X != nil {
		defaults.X = *req.X
	}
	if req.Y != nil {
		defaults.Y = *req.Y
	}
	if req.Shape != nil {
		defaults.Shape = *req.Shape
	}

	var view services.TableView
	err := tc.Engine.Do(func() error {
		table, err := tc.Engine.Registry.Create(defaults)
		if err != nil {
			return err
		}
		view, err = tc.Engine.Registry.View(table.ID)
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", view)
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	var views []services.TableView
	err := tc.Engine.Do(func() error {
		views = tc.Engine.Registry.Views()
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

func (tc *TableController) GetTable(c *gin.Context) {
	tc.mutate(c, "Table details", func(uint) error { return nil })
}

func (tc *TableController) MoveTable(c *gin.Context) {
	var req struct {
		X *float64 `json:"x" binding:"required"`
		Y *float64 `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table moved", func(id uint) error {
		_, err := tc.Engine.Registry.Move(id, *req.X, *req.Y)
		return err
	})
}

func (tc *TableController) ResizeTable(c *gin.Context) {
	var req struct {
		Width  float64 `json:"width" binding:"required"`
		Height float64 `json:"height" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table resized", func(id uint) error {
		_, err := tc.Engine.Registry.Resize(id, req.Width, req.Height)
		return err
	})
}

func (tc *TableController) SetShape(c *gin.Context) {
	var req struct {
		Shape geometry.Shape `json:"shape"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table shape updated", func(id uint) error {
		_, err := tc.Engine.Registry.SetShape(id, req.Shape)
		return err
	})
}

// SetCapacity answers with the stored capacity, which may be lower than requested.
func (tc *TableController) SetCapacity(c *gin.Context) {
	var req struct {
		Capacity *int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table capacity updated", func(id uint) error {
		_, err := tc.Engine.Registry.SetCapacity(id, *req.Capacity)
		return err
	})
}

func (tc *TableController) SetNumber(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table number updated", func(id uint) error {
		_, err := tc.Engine.Registry.SetNumber(id, req.Number)
		return err
	})
}

func (tc *TableController) SetPing(c *gin.Context) {
	var req struct {
		Ping *bool `json:"ping" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tc.mutate(c, "Table ping updated", func(id uint) error {
		_, err := tc.Engine.Registry.SetPing(id, *req.Ping)
		return err
	})
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}
	if err := tc.Engine.Do(func() error { return tc.Engine.Registry.Delete(id) }); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}

// mutate runs change on the engine loop and answers with the table's view.
func (tc *TableController) mutate(c *gin.Context, message string, change func(id uint) error) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var view services.TableView
	err := tc.Engine.Do(func() error {
		if err := change(id); err != nil {
			return err
		}
		var err error
		view, err = tc.Engine.Registry.View(id)
		return err
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, view)
}
