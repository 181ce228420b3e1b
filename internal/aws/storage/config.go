package storage

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/viper"
)

type Config struct {
	AccountsTableName     *string
	MatchResultsTableName *string
	MatchesTableName      *string
	LiveMatchesTableName  *string
}

// LoadConfig resolves table names from the environment, falling back to
// the stack defaults.
func LoadConfig() Config {
	viper.AutomaticEnv()
	viper.SetDefault("ACCOUNTS_TABLE_NAME", "Accounts")
	viper.SetDefault("MATCH_RESULTS_TABLE_NAME", "MatchResults")
	viper.SetDefault("MATCHES_TABLE_NAME", "Matches")
	viper.SetDefault("LIVE_MATCHES_TABLE_NAME", "LiveMatches")

	return Config{
		AccountsTableName:     aws.String(viper.GetString("ACCOUNTS_TABLE_NAME")),
		MatchResultsTableName: aws.String(viper.GetString("MATCH_RESULTS_TABLE_NAME")),
		MatchesTableName:      aws.String(viper.GetString("MATCHES_TABLE_NAME")),
		LiveMatchesTableName:  aws.String(viper.GetString("LIVE_MATCHES_TABLE_NAME")),
	}
}
