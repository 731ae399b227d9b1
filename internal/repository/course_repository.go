package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByDepartment(departmentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("department_id = ?", departmentID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) CountByDepartment(departmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CreateEnrollment(enrollment *model.CourseEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *CourseRepository) IsEnrolled(courseID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CourseEnrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListEnrolledStudentIDs(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.CourseEnrollment{}).
		Where("course_id = ?", courseID).
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *CourseRepository) ListByStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("course_enrollments.student_id = ? AND course_enrollments.deleted_at IS NULL", studentID).
		Order("course_enrollments.created_at DESC").
		Find(&courses).Error
	return courses, err
}
