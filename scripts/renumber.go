// 手动按日期重排班级周次/课次
//
// 直接在数据库里改过日期后使用，等价于 POST /api/cohorts/:table/renumber。
//
// 用法: go run scripts/renumber.go cohort_alpha [cohort_beta ...]

package main

import (
	"cohort_backend/internal/config"
	"cohort_backend/internal/repository"
	"cohort_backend/internal/service"
	"cohort_backend/pkg/database"
	"cohort_backend/pkg/logger"
	"context"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("用法: go run scripts/renumber.go <表名> [表名...]")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	reschedule := service.NewRescheduleService(
		repository.NewSessionRepository(db),
		repository.NoopShiftLocker{},
		nil,
		cfg.Schedule.Location(),
	)

	ctx := context.Background()
	for _, table := range os.Args[1:] {
		changes, batch, err := reschedule.Renumber(ctx, table)
		if err != nil {
			log.Printf("%s: 重排失败: %v", table, err)
			continue
		}
		log.Printf("%s: 变更 %d 节课", table, len(changes))
		for _, msg := range batch.Messages() {
			log.Printf("%s: %s", table, msg)
		}
	}
	log.Println("完成！")
}
