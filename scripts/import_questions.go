// 手动导入 YAML 题库
//
// 与 POST /api/questions/import 使用同一套校验和事务逻辑，适合首次部署时批量灌入题目。
//
// 用法: go run scripts/import_questions.go -file questions.yaml -author <用户ID>

package main

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"flag"
	"log"
	"os"
)

func main() {
	configPath := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "", "YAML 题库文件")
	author := flag.String("author", model.DevPrincipal.UserID, "题目创建者ID")
	flag.Parse()

	if *file == "" {
		log.Fatal("必须指定 -file")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("无法读取题库文件: %v", err)
	}
	defer f.Close()

	bank, err := service.ParseQuestionBank(f)
	if err != nil {
		log.Fatalf("题库格式错误: %v", err)
	}

	questions := service.NewQuestionService(repository.NewQuestionRepository(db), repository.NewCategoryRepository(db))
	result, err := questions.Import(model.Principal{UserID: *author, Role: model.RoleAdmin}, bank)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	log.Printf("完成！新建分类 %d 个，复用分类 %d 个，导入题目 %d 道", result.CategoriesCreated, result.CategoriesReused, result.QuestionsCreated)
}
