package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/feed --output domain/feed --outpkg feedmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Geocoder --dir ../domain/venue --output domain/venue --outpkg venuemock --filename geocoder_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../geocoding --output geocoding --outpkg geocodingmock --filename provider_mock.go
