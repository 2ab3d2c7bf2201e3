package service

import (
	"fmt"
	"strings"
	"time"

	"go-mergers/dto"
	"go-mergers/entities"
	"go-mergers/logger"
	"go-mergers/repository"
	"go-mergers/ws"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// CreateRoom 建房：生成 8 位房间号和本局随机种子
func CreateRoom(params dto.CreateRoomRequest) (string, error) {
	if params.MaxPlayers < 2 || params.MaxPlayers > 6 {
		return "", fmt.Errorf("房间人数须在 2 到 6 之间")
	}

	uuidStr := uuid.New().String()
	roomID := strings.ReplaceAll(uuidStr, "-", "")[:8]

	seed := rand.New(rand.NewSource(uint64(time.Now().UnixNano()))).Uint64()
	err := ws.SetRoomInfo(roomID, &entities.RoomInfo{
		RoomStatus: false,
		MaxPlayers: params.MaxPlayers,
		UserID:     params.UserID,
		Seed:       seed,
	})
	if err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}

	ws.RegisterRoom(roomID)
	logger.L.Infof("✅ 创建房间 %s，上限 %d 人", roomID, params.MaxPlayers)
	return roomID, nil
}

func DeleteRoom(params dto.DeleteRoomRequest) error {
	ctx := repository.Ctx
	rdb := repository.Rdb

	// 用 SCAN 找出该房间的所有 key
	prefix := fmt.Sprintf("room:%s:", params.RoomID)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return fmt.Errorf("房间不存在或无相关数据")
	}

	if _, err := rdb.Del(ctx, keysToDelete...).Result(); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	ws.UnregisterRoom(params.RoomID)

	return nil
}

func GetRoomList() ([]dto.RoomInfo, error) {
	var rooms []dto.RoomInfo
	for roomID, roomPlayers := range ws.RoomPlayerLists() {
		roomInfo, err := ws.GetRoomInfo(roomID)
		if err != nil {
			// 元信息丢了的残留房间，顺手清掉
			ws.UnregisterRoom(roomID)
			continue
		}
		room := dto.RoomInfo{
			RoomID:     roomID,
			UserID:     roomInfo.UserID,
			MaxPlayers: roomInfo.MaxPlayers,
			Status:     roomInfo.RoomStatus,
			RoomPlayer: roomPlayers,
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func GetOnlinePlayer() (int, error) {
	return ws.OnlinePlayerCount(), nil
}
