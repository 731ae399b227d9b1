package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立 MySQL 连接。migrate 为 true 时执行表结构迁移和种子数据，
// release 模式默认不迁移，除非命令行传入 -migrate / -migrate-only。
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.Course{},
		&model.CourseEnrollment{},
		&model.Lesson{},
		&model.CourseProgress{},
		&model.LessonProgress{},
		&model.Workshop{},
		&model.WorkshopSession{},
		&model.WorkshopEnrollment{},
		&model.Certificate{},
		&model.Notification{},
		&model.Comment{},
		&model.InstructorApplication{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认院系
	var deptCount int64
	db.Model(&model.Department{}).Count(&deptCount)
	if deptCount == 0 {
		defaultDepartments := []model.Department{
			{Name: "通识教育", Code: "GEN", Description: "面向全体学生的公共课程"},
			{Name: "计算机科学", Code: "CS", Description: "编程与软件工程方向课程"},
		}
		for _, d := range defaultDepartments {
			db.Create(&d)
		}
	}

	// 初始超级管理员（仅在用户表为空时创建，密码必须在首次登录后修改）
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123456"), bcrypt.DefaultCost)
		if err == nil {
			admin := &model.User{
				Name:     "Super Admin",
				Email:    "admin@lms.local",
				Password: string(hashed),
				Role:     model.SuperAdmin,
			}
			db.Create(admin)
			log.Println("Bootstrap super admin created: admin@lms.local")
		}
	}

	return db, nil
}
