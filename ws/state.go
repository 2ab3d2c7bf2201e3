package ws

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go-mergers/entities"
	"go-mergers/mergers"
	"go-mergers/repository"

	"github.com/mitchellh/mapstructure"
)

func gameStateKey(roomID string) string { return fmt.Sprintf("room:%s:state", roomID) }
func roomInfoKey(roomID string) string  { return fmt.Sprintf("room:%s:info", roomID) }

// GetGameState 从 Redis 读取并反序列化对局状态
func GetGameState(roomID string) (*mergers.Game, error) {
	data, err := repository.Rdb.Get(repository.Ctx, gameStateKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取对局状态失败: %w", err)
	}
	var game mergers.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("解析对局状态失败: %w", err)
	}
	return &game, nil
}

// SetGameState 序列化对局状态写回 Redis
func SetGameState(roomID string, game *mergers.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("序列化对局状态失败: %w", err)
	}
	return repository.Rdb.Set(repository.Ctx, gameStateKey(roomID), data, 0).Err()
}

// GetRoomInfo 读取房间元信息。Hash 字段都是字符串，用 mapstructure 还原类型。
func GetRoomInfo(roomID string) (*entities.RoomInfo, error) {
	fields, err := repository.Rdb.HGetAll(repository.Ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("房间 %s 不存在", roomID)
	}

	var info entities.RoomInfo
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToPrimitiveHookFunc(),
		Result:     &info,
		TagName:    "json",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("解析房间信息失败: %w", err)
	}
	return &info, nil
}

// SetRoomInfo 写入房间元信息
func SetRoomInfo(roomID string, info *entities.RoomInfo) error {
	return repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), map[string]interface{}{
		"roomStatus": strconv.FormatBool(info.RoomStatus),
		"maxPlayers": strconv.Itoa(info.MaxPlayers),
		"userID":     info.UserID,
		"seed":       strconv.FormatUint(info.Seed, 10),
	}).Err()
}

// SetRoomStatus 更新对局进行中标记
func SetRoomStatus(roomID string, started bool) error {
	return repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), "roomStatus", strconv.FormatBool(started)).Err()
}

// SetRoomSeed 重开局时更新房间种子
func SetRoomSeed(roomID string, seed uint64) error {
	return repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), "seed", strconv.FormatUint(seed, 10)).Err()
}
