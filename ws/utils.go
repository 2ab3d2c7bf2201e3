package ws

import (
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// stringToPrimitiveHookFunc Redis Hash 取出的字段都是字符串，按目标类型转回数值/布尔
func stringToPrimitiveHookFunc() mapstructure.DecodeHookFuncKind {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		s := data.(string)
		switch to {
		case reflect.Int:
			return strconv.Atoi(s)
		case reflect.Uint64:
			return strconv.ParseUint(s, 10, 64)
		case reflect.Bool:
			return strconv.ParseBool(s)
		}
		return data, nil
	}
}

// decodePayload 把消息里的 payload 字段解到 dto 结构体上
func decodePayload(msgMap map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(msgMap["payload"])
}
