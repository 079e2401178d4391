package services

import (
	lksdk "github.com/livekit/server-sdk-go"
	"github.com/spf13/viper"
)

var Lk *lksdk.RoomServiceClient

func SetupLiveKit() {
	host := "https://" + viper.GetString("meet.endpoint")

	Lk = lksdk.NewRoomServiceClient(
		host,
		viper.GetString("meet.api_key"),
		viper.GetString("meet.api_secret"),
	)
}
