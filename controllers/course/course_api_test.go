package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()

	courseGroup := app.Group("/course")
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), EnrollInCourse)
	courseGroup.Post("/:course_id/module/:module_id/lesson/:lesson_id/progress",
		middleware.JWTMiddleware, validators.LessonParams(), validators.UpdateLessonProgress(), UpdateLessonProgress)
	courseGroup.Get("/:course_id/module/:module_id/lesson/:lesson_id/progress",
		middleware.JWTMiddleware, validators.LessonParams(), GetLessonProgress)
	courseGroup.Post("/:course_id/module/:module_id/assessment/submit",
		middleware.JWTMiddleware, validators.CourseModuleParams(), validators.SubmitAssessment(), SubmitAssessment)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseProgressParams(), GetCourseProgress)

	return app
}

func createTestUser(t *testing.T) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:            "Asha Learner",
		Email:           fmt.Sprintf("%s@example.com", t.Name()),
		Password:        "not-used-here",
		Role:            "USER",
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// createTestCourse seeds a published two-module course. Module two requires
// module one, module one carries a two-question assessment with a passing
// score of 70 and two video lessons.
func createTestCourse(t *testing.T) courseModels.Course {
	t.Helper()
	db := database.Database.Db

	course := courseModels.Course{
		Title:       "Foundations of Trading",
		Description: "From candles to strategies",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	mod1 := courseModels.Module{
		CourseID:     course.ID,
		ModuleKey:    "module-1",
		Title:        "Basics",
		OrderIndex:   1,
		PassingScore: 70,
	}
	require.NoError(t, db.Create(&mod1).Error)

	mod2 := courseModels.Module{
		CourseID:            course.ID,
		ModuleKey:           "module-2",
		Title:               "Strategies",
		OrderIndex:          2,
		PrerequisiteModules: datatypes.NewJSONSlice([]string{"module-1"}),
		PassingScore:        70,
	}
	require.NoError(t, db.Create(&mod2).Error)

	lessons := []courseModels.Lesson{
		{CourseID: course.ID, ModuleID: mod1.ID, LessonKey: "lesson-1", Title: "Intro", ContentType: "VIDEO", OrderIndex: 1},
		{CourseID: course.ID, ModuleID: mod1.ID, LessonKey: "lesson-2", Title: "Candles", ContentType: "VIDEO", OrderIndex: 2},
		{CourseID: course.ID, ModuleID: mod2.ID, LessonKey: "lesson-3", Title: "Breakouts", ContentType: "VIDEO", OrderIndex: 1},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	questions := []courseModels.AssessmentQuestion{
		{CourseID: course.ID, ModuleID: mod1.ID, QuestionKey: "q1", Question: "What is a candle?",
			Options: datatypes.NewJSONSlice([]string{"A light", "A price bar"}), CorrectAnswer: 1, OrderIndex: 1},
		{CourseID: course.ID, ModuleID: mod1.ID, QuestionKey: "q2", Question: "What is a trend?",
			Options: datatypes.NewJSONSlice([]string{"A direction", "A fee"}), CorrectAnswer: 0, OrderIndex: 2},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	return course
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestEnrollSeedsAllModules(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, body := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, body.Status)

	var enrollment courseModels.Enrollment
	require.NoError(t, json.Unmarshal(body.Data, &enrollment))
	require.Equal(t, "ENROLLED", enrollment.Status)
	require.Equal(t, "module-1", enrollment.CurrentModule)

	mods := enrollment.ModuleProgress.Data()
	require.Len(t, mods, 2)
	require.Equal(t, "module-1", mods[0].ModuleID)
	require.Equal(t, "module-2", mods[1].ModuleID)
	for _, mp := range mods {
		require.False(t, mp.Completed)
		require.Zero(t, mp.VideoProgress)
	}

	// Enrolling again must be rejected
	resp, body = doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.False(t, body.Status)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)

	course := courseModels.Course{Title: "Draft", Description: "Not ready"}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLessonProgressFlow(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	progressURL := func(module, lesson string) string {
		return fmt.Sprintf("/course/%d/module/%s/lesson/%s/progress", course.ID, module, lesson)
	}

	// First lesson watched to 95 percent: lesson completes, module does not
	resp, body := doRequest(t, app, "POST", progressURL("module-1", "lesson-1"), token, fiber.Map{"progress": 95, "position": 320})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var update struct {
		Progress       int  `json:"progress"`
		Completed      bool `json:"completed"`
		ModuleProgress struct {
			Completed     bool `json:"completed"`
			VideoProgress int  `json:"videoProgress"`
		} `json:"moduleProgress"`
		OverallProgress int    `json:"overallProgress"`
		CurrentModule   string `json:"currentModule"`
		IsCompleted     bool   `json:"isCompleted"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &update))
	require.Equal(t, 95, update.Progress)
	require.True(t, update.Completed)
	require.False(t, update.ModuleProgress.Completed)
	require.Equal(t, 95, update.ModuleProgress.VideoProgress)
	require.Equal(t, 0, update.OverallProgress)

	// A lower report later must not regress the stored maximum
	resp, body = doRequest(t, app, "POST", progressURL("module-1", "lesson-1"), token, fiber.Map{"progress": 40})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body.Data, &update))
	require.Equal(t, 95, update.Progress)
	require.True(t, update.Completed)

	// Second lesson completes the module and unlocks module two
	resp, body = doRequest(t, app, "POST", progressURL("module-1", "lesson-2"), token, fiber.Map{"progress": 90})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body.Data, &update))
	require.True(t, update.ModuleProgress.Completed)
	require.Equal(t, 92, update.ModuleProgress.VideoProgress) // floor((95+90)/2)
	require.Equal(t, 50, update.OverallProgress)
	require.False(t, update.IsCompleted)

	// Module one carries an assessment, so module two stays locked until it
	// is passed even though every lesson is complete
	require.Equal(t, "module-1", update.CurrentModule)

	resp, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/module/module-1/assessment/submit", course.ID),
		token, fiber.Map{"answers": map[string]int{"q1": 1, "q2": 0}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	require.Equal(t, "module-2", enrollment.CurrentModule)

	// Stored lesson state survives a read back
	resp, body = doRequest(t, app, "GET", progressURL("module-1", "lesson-1"), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored struct {
		Progress     int  `json:"progress"`
		Completed    bool `json:"completed"`
		LastPosition int  `json:"lastPosition"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &stored))
	require.Equal(t, 95, stored.Progress)
	require.True(t, stored.Completed)
	require.Equal(t, 320, stored.LastPosition)
}

func TestLessonProgressUnknownLesson(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/module/module-1/lesson/no-such-lesson/progress", course.ID),
		token, fiber.Map{"progress": 50})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLessonProgressValidation(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/module/module-1/lesson/lesson-1/progress", course.ID),
		token, fiber.Map{"progress": 140})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAssessmentSubmit(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	submitURL := fmt.Sprintf("/course/%d/module/module-1/assessment/submit", course.ID)

	// One of two correct: 50 percent is below the passing score
	resp, body := doRequest(t, app, "POST", submitURL, token, fiber.Map{
		"answers": map[string]int{"q1": 0, "q2": 0},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Score   float64 `json:"score"`
		Passed  bool    `json:"passed"`
		Correct int     `json:"correct"`
		Total   int     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.Equal(t, float64(50), result.Score)
	require.False(t, result.Passed)
	require.Equal(t, 1, result.Correct)
	require.Equal(t, 2, result.Total)

	// Both correct passes and flips the module's assessment flag
	resp, body = doRequest(t, app, "POST", submitURL, token, fiber.Map{
		"answers": map[string]int{"q1": 1, "q2": 0},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.Equal(t, float64(100), result.Score)
	require.True(t, result.Passed)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	mp := progress.FindModule(enrollment.ModuleProgress.Data(), "module-1")
	require.NotNil(t, mp)
	require.True(t, mp.AssessmentCompleted)

	// Both attempts were recorded
	var attempts int64
	database.Database.Db.Model(&courseModels.AssessmentAttempt{}).Where("module_key = ?", "module-1").Count(&attempts)
	require.Equal(t, int64(2), attempts)
}

func TestCourseProgressGating(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t)
	course := createTestCourse(t)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, app, "GET", fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		Modules []struct {
			ModuleKey            string   `json:"module_key"`
			IsAccessible         bool     `json:"is_accessible"`
			MissingPrerequisites []string `json:"missing_prerequisites"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &view))
	require.Len(t, view.Modules, 2)
	require.True(t, view.Modules[0].IsAccessible)
	require.False(t, view.Modules[1].IsAccessible)
	require.Equal(t, []string{"module-1"}, view.Modules[1].MissingPrerequisites)
}

func TestSaveEnrollmentConflict(t *testing.T) {
	setupTestApp(t)
	user, _ := createTestUser(t)
	course := createTestCourse(t)
	db := database.Database.Db

	enrollment := courseModels.Enrollment{
		UserID:         user.ID,
		CourseID:       course.ID,
		Status:         "ENROLLED",
		CurrentModule:  "module-1",
		ModuleProgress: datatypes.NewJSONType([]progress.ModuleProgress{progress.NewModuleProgress("module-1")}),
		EnrollmentDate: time.Now(),
		LastAccessDate: time.Now(),
		Version:        1,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	stale := enrollment

	// Another writer bumps the version behind this record's back
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("version", enrollment.Version+1).Error)

	err := saveEnrollmentProgress(db, &stale)
	require.ErrorIs(t, err, errEnrollmentConflict)

	// A fresh read with the current version writes fine
	var fresh courseModels.Enrollment
	require.NoError(t, db.First(&fresh, enrollment.ID).Error)
	fresh.OverallProgress = 50
	require.NoError(t, saveEnrollmentProgress(db, &fresh))
	require.Equal(t, enrollment.Version+2, fresh.Version)
}
