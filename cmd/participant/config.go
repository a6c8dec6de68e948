package main

type Config struct {
	Name        string `env:"NAME,default=Jeff's Agent"`
	Description string `env:"DESCRIPTION,default=Answers availability questions for badminton scheduling."`
	Host        string `env:"HOST,default=localhost"`
	Port        int    `env:"PORT,default=10004"`
	LogLevel    string `env:"LOG_LEVEL,default=INFO"`
}
