// 初始化管理员、教师账号与示例课程目录
//
// 已存在的账号会被跳过，项目按 code 判重。
//
// 用法: go run scripts/seed_catalog.go -file scripts/seed_catalog.yaml

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/repository"
	"eduboost_backend/internal/service"
	"eduboost_backend/pkg/database"
	"eduboost_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedUser struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

type seedAssessment struct {
	Title    string  `yaml:"title"`
	Type     string  `yaml:"type"`
	MaxScore float64 `yaml:"maxScore"`
}

type seedModule struct {
	Code           string           `yaml:"code"`
	Title          string           `yaml:"title"`
	Difficulty     string           `yaml:"difficulty"`
	EstimatedHours int              `yaml:"estimatedHours"`
	Assessments    []seedAssessment `yaml:"assessments"`
}

type seedProgram struct {
	Code        string       `yaml:"code"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Modules     []seedModule `yaml:"modules"`
}

type seedFile struct {
	Admin    seedUser      `yaml:"admin"`
	Educator seedUser      `yaml:"educator"`
	Programs []seedProgram `yaml:"programs"`
}

func ensureUser(users *repository.UserRepository, u seedUser, role model.UserRole) *model.User {
	email := strings.ToLower(u.Email)
	existing, err := users.FindByEmail(email)
	if err == nil {
		log.Printf("用户已存在，跳过: %s", email)
		return existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询用户失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}
	user := &model.User{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		Approved:  true,
	}
	if err := users.Create(user); err != nil {
		log.Fatalf("创建用户失败: %v", err)
	}
	log.Printf("已创建 %s: %s", role, email)
	return user
}

func main() {
	file := flag.String("file", "scripts/seed_catalog.yaml", "种子数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取种子数据: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析种子数据失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	ensureUser(users, seed.Admin, model.Admin)
	educator := ensureUser(users, seed.Educator, model.Educator)

	modules := service.NewModuleService(service.Repositories{
		Users:       users,
		Programs:    repository.NewProgramRepository(db),
		Batches:     repository.NewBatchRepository(db),
		Modules:     repository.NewModuleRepository(db),
		Assessments: repository.NewAssessmentRepository(db),
		Templates:   repository.NewAssignmentTemplateRepository(db),
		Enrollments: repository.NewEnrollmentRepository(db),
	})

	existing, err := modules.ListPrograms()
	if err != nil {
		log.Fatalf("查询项目失败: %v", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Code] = true
	}

	for _, p := range seed.Programs {
		if seen[strings.ToUpper(p.Code)] {
			log.Printf("项目已存在，跳过: %s", p.Code)
			continue
		}
		program, err := modules.CreateProgram(educator.ID, service.ProgramRequest{
			Code:        p.Code,
			Title:       p.Title,
			Description: p.Description,
		})
		if err != nil {
			log.Fatalf("创建项目失败: %v", err)
		}

		for _, m := range p.Modules {
			module, err := modules.CreateModule(service.ModuleRequest{
				ProgramID:      program.ID,
				Code:           m.Code,
				Title:          m.Title,
				Difficulty:     m.Difficulty,
				EstimatedHours: m.EstimatedHours,
			})
			if err != nil {
				log.Fatalf("创建模块失败: %v", err)
			}
			for _, a := range m.Assessments {
				if _, err := modules.CreateAssessment(educator.ID, module.ID, service.AssessmentRequest{
					Title:    a.Title,
					Type:     a.Type,
					MaxScore: a.MaxScore,
				}); err != nil {
					log.Fatalf("创建考核失败: %v", err)
				}
			}
		}
		log.Printf("已创建项目 %s，模块 %d 个", program.Code, len(p.Modules))
	}

	log.Println("完成！")
}
