package config

type Vestings struct {
	QueryEndpoint string `env:"VESTINGS_QUERY_ENDPOINT" envDefault:"https://api.studio.thegraph.com/query/49472/vesting/version/latest"`
}
