package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/feeoverride --output domain/feeoverride --outpkg feeoverridemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
