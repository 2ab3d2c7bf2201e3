// mysql.go 对局历史入库（可选：没配 MYSQL_DSN 就跳过）
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go-mergers/logger"
	"go-mergers/mergers"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func InitMySQL() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		logger.L.Warn("⚠️ 未配置 MYSQL_DSN，对局历史不入库")
		return
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		logger.L.Fatalf("MySQL 连接失败: %v", err)
	}
	if err := db.Ping(); err != nil {
		logger.L.Fatalf("MySQL ping 失败: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS game_results (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		room_id VARCHAR(32) NOT NULL,
		declared_by VARCHAR(64) NOT NULL,
		winners VARCHAR(255) NOT NULL,
		scores JSON NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		logger.L.Fatalf("初始化 game_results 表失败: %v", err)
	}

	DB = db
	logger.L.Info("✅ MySQL 连接成功")
}

// SaveGameResult 终局后写一条对局历史
func SaveGameResult(roomID string, result *mergers.GameOver) error {
	if DB == nil {
		return nil
	}

	winners := result.Winners
	if result.Winner != "" {
		winners = []string{result.Winner}
	}
	scoresJSON, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("结算数据序列化失败: %w", err)
	}

	_, err = DB.Exec(
		"INSERT INTO game_results (room_id, declared_by, winners, scores) VALUES (?, ?, ?, ?)",
		roomID, result.DeclaredBy, strings.Join(winners, ","), scoresJSON,
	)
	if err != nil {
		return fmt.Errorf("写入对局历史失败: %w", err)
	}
	return nil
}
