package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/service"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// CourseHandler serves course catalog reads.
type CourseHandler struct {
	catalog *service.CatalogService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(catalog *service.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// List godoc
// @Summary List catalog courses
// @Description List offered courses, optionally filtered by department and category
// @Tags Courses
// @Produce json
// @Param department query []string false "Department ids"
// @Param category query []string false "Course categories"
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{
		DepartmentIDs: c.QueryArray("department"),
		Categories:    c.QueryArray("category"),
	}

	courses, err := h.catalog.ListCourses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if courses == nil {
		courses = []models.CourseRow{}
	}

	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// Get godoc
// @Summary Get one catalog course
// @Description Load a single course with its parsed schedule slots
// @Tags Courses
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.catalog.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, course)
}
