package controllers

import (
	"errors"
	"net/http"

	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/middlewares"
	"github.com/PepsTwist/app-nutricionista/services"

	"github.com/gin-gonic/gin"
)

type MealItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    string  `json:"quantity" binding:"required"`
	Notes       *string `json:"notes"`
}

type MealInput struct {
	Name      string          `json:"name" binding:"required"`
	Time      string          `json:"time" binding:"required"`
	DayOfWeek string          `json:"dayOfWeek" binding:"required"`
	Items     []MealItemInput `json:"items" binding:"dive"`
}

type CreateDietPlanInput struct {
	Name        string      `json:"name" binding:"required"`
	Description *string     `json:"description"`
	PatientID   string      `json:"patientId" binding:"required,uuid"`
	Meals       []MealInput `json:"meals" binding:"dive"`
}

// UpdateDietPlanInput: leaving meals out (or sending []) clears every meal
// on the plan. Clients that want to keep the tree must resend it in full.
type UpdateDietPlanInput struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	IsActive    *bool       `json:"isActive"`
	Meals       []MealInput `json:"meals" binding:"dive"`
}

func toMealSpecs(inputs []MealInput) []services.MealInput {
	specs := make([]services.MealInput, 0, len(inputs))
	for _, meal := range inputs {
		spec := services.MealInput{
			Name:      meal.Name,
			Time:      meal.Time,
			DayOfWeek: meal.DayOfWeek,
		}
		for _, item := range meal.Items {
			spec.Items = append(spec.Items, services.MealItemInput{
				Description: item.Description,
				Quantity:    item.Quantity,
				Notes:       item.Notes,
			})
		}
		specs = append(specs, spec)
	}
	return specs
}

// CreateDietPlan creates a plan with its nested meals for one of the
// caller's patients.
func CreateDietPlan(c *gin.Context) {
	var input CreateDietPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewDietService(config.DB)
	plan, err := svc.Create(services.CreateDietPlanInput{
		Name:        input.Name,
		Description: input.Description,
		PatientID:   input.PatientID,
		Meals:       toMealSpecs(input.Meals),
	}, nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create diet plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetDietPlan returns one of the caller's plans with its full meal tree.
func GetDietPlan(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewDietService(config.DB)
	plan, err := svc.FindOne(c.Param("planId"), nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diet plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load diet plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdateDietPlan applies scalar changes and replaces the meal tree
// atomically.
func UpdateDietPlan(c *gin.Context) {
	var input UpdateDietPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewDietService(config.DB)
	plan, err := svc.Update(c.Param("planId"), services.UpdateDietPlanInput{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    input.IsActive,
		Meals:       toMealSpecs(input.Meals),
	}, nutritionist.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diet plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update diet plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteDietPlan removes one of the caller's plans.
func DeleteDietPlan(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewDietService(config.DB)
	if err := svc.Delete(c.Param("planId"), nutritionist.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diet plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete diet plan"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDietPlansByPatient returns the plans the caller authored for one
// patient, newest first.
func ListDietPlansByPatient(c *gin.Context) {
	nutritionist := middlewares.CurrentNutritionist(c)
	svc := services.NewDietService(config.DB)
	plans, err := svc.ListByPatient(c.Param("patientId"), nutritionist.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list diet plans"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// ListMyDietPlans returns the logged-in patient's plan summaries.
func ListMyDietPlans(c *gin.Context) {
	patient := middlewares.CurrentPatient(c)
	svc := services.NewDietService(config.DB)
	plans, err := svc.ListMine(patient.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list diet plans"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetMyDietPlan returns one of the logged-in patient's plans with meals.
func GetMyDietPlan(c *gin.Context) {
	patient := middlewares.CurrentPatient(c)
	svc := services.NewDietService(config.DB)
	plan, err := svc.FindMine(c.Param("planId"), patient.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diet plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load diet plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}
