package routes

import (
	"github.com/PepsTwist/app-nutricionista/config"
	"github.com/PepsTwist/app-nutricionista/controllers"
	"github.com/PepsTwist/app-nutricionista/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	db := config.DB

	// Public routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/profile", middlewares.NutritionistAuth(db), controllers.GetProfile)
		auth.GET("/me", middlewares.PatientAuth(db), controllers.GetMe)
	}

	r.POST("/users", controllers.RegisterUser)

	// Nutritionist-scoped patient management. The reset-password route is
	// the one place a reset token is accepted.
	patients := r.Group("/patients")
	{
		patients.PATCH("/me/reset-password", middlewares.ResetPasswordAuth(db), controllers.ResetMyPassword)

		patients.POST("", middlewares.NutritionistAuth(db), controllers.CreatePatient)
		patients.GET("", middlewares.NutritionistAuth(db), controllers.ListPatients)
		patients.GET("/:id", middlewares.NutritionistAuth(db), controllers.GetPatient)
		patients.PATCH("/:id", middlewares.NutritionistAuth(db), controllers.UpdatePatient)
		patients.DELETE("/:id", middlewares.NutritionistAuth(db), controllers.DeletePatient)
	}

	anamnesis := r.Group("/anamnesis")
	anamnesis.Use(middlewares.NutritionistAuth(db))
	{
		anamnesis.POST("/:patientId", controllers.UpsertAnamnesis)
		anamnesis.GET("/:patientId", controllers.GetAnamnesis)
	}

	diet := r.Group("/diet")
	{
		diet.GET("/my-plans", middlewares.PatientAuth(db), controllers.ListMyDietPlans)
		diet.GET("/my-plan/:planId", middlewares.PatientAuth(db), controllers.GetMyDietPlan)

		diet.POST("/plan", middlewares.NutritionistAuth(db), controllers.CreateDietPlan)
		diet.GET("/plan/:planId", middlewares.NutritionistAuth(db), controllers.GetDietPlan)
		diet.PATCH("/plan/:planId", middlewares.NutritionistAuth(db), controllers.UpdateDietPlan)
		diet.DELETE("/plan/:planId", middlewares.NutritionistAuth(db), controllers.DeleteDietPlan)
		diet.GET("/plans/by-patient/:patientId", middlewares.NutritionistAuth(db), controllers.ListDietPlansByPatient)
	}

	weightRecords := r.Group("/weight-records")
	{
		weightRecords.POST("", middlewares.PatientAuth(db), controllers.CreateWeightRecord)
		weightRecords.GET("/:patientId", middlewares.SessionAuth(db), controllers.ListWeightRecords)
		weightRecords.DELETE("/:id", middlewares.PatientAuth(db), controllers.DeleteWeightRecord)
	}

	return r
}
